package objectstorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectInfo is the metadata returned after an upload or a head request
type ObjectInfo struct {
	Path      string
	ETag      string
	VersionID string
	Size      int64
}

// ObjectStore is the interface for reading and writing to an external object storage service such as AWS S3
type ObjectStore interface {
	UploadObject(ctx context.Context, path string, body io.Reader) error
	HeadObject(ctx context.Context, path string) (ObjectInfo, error)
	DownloadObject(ctx context.Context, path string) (io.ReadCloser, error)
	ListObjects(ctx context.Context, path string) ([]string, error)
}

// S3API is the subset of the S3 client used by the ObjectStore
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

func SplitS3Path(path string) (bucket string, key string, err error) {
	if !strings.HasPrefix(path, "s3://") {
		return "", "", fmt.Errorf("path does not contain s3:// protocol prefix: %s", path)
	}
	bucket, key, found := strings.Cut(path[5:], "/")
	if !found || bucket == "" {
		return "", "", fmt.Errorf("error occurred when retrieving bucket and key from: %s", path)
	}
	return bucket, key, nil
}

func JoinS3Path(bucket string, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, strings.TrimPrefix(key, "/"))
}

type awsS3ObjectStore struct {
	s3Client S3API
}

func NewAwsS3ObjectStore(ctx context.Context, cfg aws.Config) ObjectStore {
	return &awsS3ObjectStore{s3Client: s3.NewFromConfig(cfg)}
}

// NewObjectStoreFromClient wraps an existing S3 client, typically a stub in tests
func NewObjectStoreFromClient(client S3API) ObjectStore {
	return &awsS3ObjectStore{s3Client: client}
}

func (store *awsS3ObjectStore) UploadObject(ctx context.Context, path string, body io.Reader) error {
	s3Bucket, s3Key, err := SplitS3Path(path)
	if err != nil {
		return err
	}
	_, err = store.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s3Bucket,
		Key:    &s3Key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	return nil
}

func (store *awsS3ObjectStore) HeadObject(ctx context.Context, path string) (ObjectInfo, error) {
	s3Bucket, s3Key, err := SplitS3Path(path)
	if err != nil {
		return ObjectInfo{}, err
	}
	out, err := store.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s3Bucket,
		Key:    &s3Key,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("head %s: %w", path, err)
	}
	return ObjectInfo{
		Path:      path,
		ETag:      aws.ToString(out.ETag),
		VersionID: aws.ToString(out.VersionId),
		Size:      out.ContentLength,
	}, nil
}

// DownloadObject returns the object body; callers must close it
func (store *awsS3ObjectStore) DownloadObject(ctx context.Context, path string) (io.ReadCloser, error) {
	s3Bucket, s3Key, err := SplitS3Path(path)
	if err != nil {
		return nil, err
	}
	getObjectOutput, err := store.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s3Bucket,
		Key:    &s3Key,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}
	return getObjectOutput.Body, nil
}

func (store *awsS3ObjectStore) ListObjects(ctx context.Context, path string) ([]string, error) {
	s3Bucket, s3Key, err := SplitS3Path(path)
	if err != nil {
		return nil, err
	}
	objectPaths := []string{}
	in := &s3.ListObjectsV2Input{
		Bucket: &s3Bucket,
		Prefix: &s3Key,
	}
	for {
		listObjectOutput, err := store.s3Client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, objMetadata := range listObjectOutput.Contents {
			objectPaths = append(objectPaths, JoinS3Path(s3Bucket, aws.ToString(objMetadata.Key)))
		}
		if !listObjectOutput.IsTruncated || listObjectOutput.NextContinuationToken == nil {
			break
		}
		in.ContinuationToken = listObjectOutput.NextContinuationToken
	}
	return objectPaths, nil
}
