package storage

import (
	"fmt"

	"sentrim/internal/config"
)

// FromConfig builds the publishing backend selected by the configuration.
func FromConfig(cfg *config.Config) (Backend, error) {
	switch cfg.Export.Backend {
	case "", "local":
		return NewLocalBackend(cfg.Paths.OutputDir)
	case "s3":
		return NewS3Backend(S3Config{
			Bucket:          cfg.Export.S3Bucket,
			Region:          cfg.Export.S3Region,
			Endpoint:        cfg.Export.S3Endpoint,
			Prefix:          cfg.Export.S3Prefix,
			AccessKeyID:     cfg.Export.AccessKeyID,
			SecretAccessKey: cfg.Export.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown export backend %q", cfg.Export.Backend)
	}
}
