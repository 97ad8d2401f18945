package app

import (
	"context"
	"fmt"

	"libridex/internal/config"
	"libridex/internal/core"
	"libridex/internal/source"
)

// NewSource builds the document source for a run. root is the local
// directory to walk; for S3 runs the bucket and prefix come from the
// config instead.
func NewSource(ctx context.Context, cfg *config.Config, root string) (core.Source, error) {
	switch cfg.Source {
	case "local":
		return source.NewLocalSource(root), nil
	case "s3":
		return source.NewS3Source(ctx, source.S3Config{
			AccessKey: cfg.AwsAccessKey,
			SecretKey: cfg.AwsSecretKey,
			Region:    cfg.AwsRegion,
			Bucket:    cfg.BucketName,
			Prefix:    cfg.BucketPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
