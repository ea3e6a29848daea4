// Package bundle builds the zip archives that are deployed as function code.
package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/glomex/ramuda-sample/pkg/objectstorage"
)

// MaxSize is the deployment bundle limit; bundles of this size or larger are rejected.
const MaxSize = 50 * 1000 * 1000

var (
	ErrBundleTooLarge   = errors.New("deployment bundles must not be bigger than 50MB")
	ErrChecksumMismatch = errors.New("uploaded bundle does not match")
)

// File is one entry in a bundle
type File struct {
	Name string
	Mode fs.FileMode
	Data []byte
}

// Build writes files into an in-memory zip, ordered by name.
func Build(files []File) ([]byte, error) {
	sorted := append([]File(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	buf := bytes.Buffer{}
	w := zip.NewWriter(&buf)
	for _, f := range sorted {
		header := &zip.FileHeader{Name: f.Name, Method: zip.Deflate}
		mode := f.Mode
		if mode == 0 {
			mode = 0644
		}
		header.SetMode(mode)
		entry, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("adding %s to bundle: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("writing %s to bundle: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CollectFiles reads each path into a File. Directories are walked and their
// files are named relative to the directory.
func CollectFiles(paths ...string) ([]File, error) {
	files := []File{}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			data, err := os.ReadFile(root)
			if err != nil {
				return nil, err
			}
			files = append(files, File{Name: filepath.Base(root), Mode: info.Mode(), Data: data})
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			files = append(files, File{Name: filepath.ToSlash(rel), Mode: fi.Mode(), Data: data})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func CheckSize(buf []byte) error {
	mbytes := float64(len(buf)) / 1000000.0
	logrus.Debugf("buffer has size %0.2f MB", mbytes)
	if len(buf) >= MaxSize {
		return fmt.Errorf("%w: bundle is %0.2f MB", ErrBundleTooLarge, mbytes)
	}
	return nil
}

// Checksum returns the base64 encoded sha256 of buf, the same format Lambda reports as CodeSha256.
func Checksum(buf []byte) string {
	sum := sha256.Sum256(buf)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Revision derives a short revision name from the bundle content.
func Revision(buf []byte) string {
	sum := sha256.Sum256(buf)
	return fmt.Sprintf("%x", sum[:6])
}

// Key is the object key a bundle is uploaded under.
func Key(region string, function string, revision string) string {
	return path.Join("ramuda", region, function, revision+".zip")
}

// Path is the full s3:// location of a bundle revision.
func Path(bucket string, region string, function string, revision string) string {
	return objectstorage.JoinS3Path(bucket, Key(region, function, revision))
}

// Revisions lists the revisions already uploaded for function, sorted.
func Revisions(ctx context.Context, store objectstorage.ObjectStore, bucket string, region string, function string) ([]string, error) {
	prefix := objectstorage.JoinS3Path(bucket, path.Join("ramuda", region, function)+"/")
	paths, err := store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", prefix, err)
	}
	revisions := []string{}
	for _, p := range paths {
		name := strings.TrimPrefix(p, prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ".zip") {
			continue
		}
		revisions = append(revisions, strings.TrimSuffix(name, ".zip"))
	}
	sort.Strings(revisions)
	return revisions, nil
}

func Exists(ctx context.Context, store objectstorage.ObjectStore, bucket string, region string, function string, revision string) (bool, error) {
	revisions, err := Revisions(ctx, store, bucket, region, function)
	if err != nil {
		return false, err
	}
	for _, r := range revisions {
		if r == revision {
			return true, nil
		}
	}
	return false, nil
}

// Upload stores buf in bucket under Key and returns the stored object's metadata.
// A revision that is already present is not uploaded again; uploaded reports which case happened.
func Upload(ctx context.Context, store objectstorage.ObjectStore, bucket string, region string, function string, revision string, buf []byte) (info objectstorage.ObjectInfo, uploaded bool, err error) {
	if err := CheckSize(buf); err != nil {
		return objectstorage.ObjectInfo{}, false, err
	}
	dest := Path(bucket, region, function, revision)
	exists, err := Exists(ctx, store, bucket, region, function, revision)
	if err != nil {
		return objectstorage.ObjectInfo{}, false, err
	}
	if exists {
		logrus.WithField("path", dest).Info("revision already uploaded, skipping")
	} else {
		if err := store.UploadObject(ctx, dest, bytes.NewReader(buf)); err != nil {
			return objectstorage.ObjectInfo{}, false, err
		}
	}
	info, err = store.HeadObject(ctx, dest)
	return info, !exists, err
}

// Verify downloads the object at location and checks it matches buf.
func Verify(ctx context.Context, store objectstorage.ObjectStore, location string, buf []byte) error {
	body, err := store.DownloadObject(ctx, location)
	if err != nil {
		return err
	}
	defer body.Close()
	remote, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", location, err)
	}
	if got, want := Checksum(remote), Checksum(buf); got != want {
		return fmt.Errorf("%w: %s has %s, local bundle has %s", ErrChecksumMismatch, location, got, want)
	}
	return nil
}
