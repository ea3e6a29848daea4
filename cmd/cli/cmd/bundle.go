/*
Copyright © 2026 The ramuda-sample Authors

*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/glomex/ramuda-sample/pkg/bundle"
	"github.com/glomex/ramuda-sample/pkg/objectstorage"
)

var ErrMissingDeployTarget = errors.New("needs RAMUDA_DEPLOY_BUCKET and RAMUDA_FUNCTION")

var (
	bundleOut      string
	bundleUpload   bool
	bundleVerify   bool
	bundleRevision string
)

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.AddCommand(bundleListCmd)
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "bundle.zip", "where to write the zip file")
	bundleCmd.Flags().BoolVar(&bundleUpload, "upload", false, "upload the bundle to the deploy bucket")
	bundleCmd.Flags().BoolVar(&bundleVerify, "verify", false, "download the uploaded bundle and compare checksums")
	bundleCmd.Flags().StringVar(&bundleRevision, "revision", "", "revision name used in the object key, defaults to a content hash")
}

var bundleCmd = &cobra.Command{
	Use:   "bundle PATH...",
	Short: "Bundles function code into a zip file",
	Long: `Zips the given files and directories into a deployment bundle. Bundles of 50MB
or more are rejected. With --upload the bundle is stored at
s3://<deploy bucket>/ramuda/<region>/<function>/<revision>.zip unless that
revision is already there.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := bundle.CollectFiles(args...)
		if err != nil {
			return err
		}
		buf, err := bundle.Build(files)
		if err != nil {
			return err
		}
		if err := bundle.CheckSize(buf); err != nil {
			return err
		}
		if err := os.WriteFile(bundleOut, buf, 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", bundleOut, bundle.Checksum(buf))

		if !bundleUpload {
			return nil
		}
		store, err := newObjectStore(cmd.Context())
		if err != nil {
			return err
		}
		revision := bundleRevision
		if revision == "" {
			revision = bundle.Revision(buf)
		}
		return runUpload(cmd.Context(), cmd.OutOrStdout(), store, config, revision, buf, bundleVerify)
	},
}

var bundleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the uploaded revisions of a function",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newObjectStore(cmd.Context())
		if err != nil {
			return err
		}
		return runListRevisions(cmd.Context(), cmd.OutOrStdout(), store, config)
	},
}

func newObjectStore(ctx context.Context) (objectstorage.ObjectStore, error) {
	if config.DeployBucket == "" || config.Function == "" {
		return nil, ErrMissingDeployTarget
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return objectstorage.NewAwsS3ObjectStore(ctx, cfg), nil
}

func runUpload(ctx context.Context, out io.Writer, store objectstorage.ObjectStore, c Config, revision string, buf []byte, verify bool) error {
	if c.DeployBucket == "" || c.Function == "" {
		return ErrMissingDeployTarget
	}
	info, uploaded, err := bundle.Upload(ctx, store, c.DeployBucket, c.Region, c.Function, revision, buf)
	if err != nil {
		return err
	}
	status := "uploaded"
	if !uploaded {
		status = "exists"
	}
	fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", status, info.Path, info.ETag, info.VersionID)
	if verify {
		if err := bundle.Verify(ctx, store, info.Path, buf); err != nil {
			return err
		}
		fmt.Fprintf(out, "verified\t%s\n", info.Path)
	}
	return nil
}

func runListRevisions(ctx context.Context, out io.Writer, store objectstorage.ObjectStore, c Config) error {
	revisions, err := bundle.Revisions(ctx, store, c.DeployBucket, c.Region, c.Function)
	if err != nil {
		return err
	}
	for _, r := range revisions {
		fmt.Fprintf(out, "%s\t%s\n", r, bundle.Path(c.DeployBucket, c.Region, c.Function, r))
	}
	return nil
}
