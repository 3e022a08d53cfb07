package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salihkiraz/lumen-theme/bundle"
	"github.com/salihkiraz/lumen-theme/config"
)

func installCmd() *cobra.Command {
	var (
		from      string
		bundleDir string
		bucket    string
		region    string
		prefix    string
		endpoint  string
		pathStyle bool
	)

	cmd := &cobra.Command{
		Use:   "install <name>",
		Short: "Fetch a theme bundle and install it under the themes path",
		Long: `Install fetches <name>.zip from the bundle source, verifies it holds a
theme manifest, and extracts it into a new folder under the themes
path. A following scan, or POST /rescan against the running service,
picks the theme up.

The s3 source reads credentials from the default AWS chain
(environment, shared config, instance role).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), args[0], from, bundleDir, bundle.S3Config{
				Bucket:       bucket,
				Region:       region,
				Prefix:       prefix,
				Endpoint:     endpoint,
				UsePathStyle: pathStyle,
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "dir", "Bundle source: dir or s3")
	cmd.Flags().StringVar(&bundleDir, "bundle-dir", "bundles", "Local folder holding .zip bundles (dir source)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket holding .zip bundles (s3 source)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (s3 source)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket (s3 source)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Custom S3 endpoint, MinIO et al. (s3 source)")
	cmd.Flags().BoolVar(&pathStyle, "path-style", false, "Use path-style addressing (s3 source)")

	return cmd
}

func runInstall(ctx context.Context, name, from, bundleDir string, s3cfg bundle.S3Config) error {
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}

	var src bundle.Source
	switch from {
	case "dir":
		src = bundle.NewDir(bundleDir)
	case "s3":
		src, err = bundle.NewS3(ctx, s3cfg)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown bundle source %q, use dir or s3", from)
	}

	dir, err := bundle.Install(ctx, src, name, cfg.Themes.ThemesPath)
	if err != nil {
		return err
	}

	fmt.Printf("installed theme %q under %s\n", dir, cfg.Themes.ThemesPath)
	return nil
}
