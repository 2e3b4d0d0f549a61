package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
)

// Config holds the S3 settings for the callback archive
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads archive configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnvBool("S3_ARCHIVE_ENABLED", false),
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when the callback archive is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when the callback archive is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when the callback archive is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if callbacks should be archived
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey builds the key of an archived callback.
// Format: callbacks/YYYY/MM/<orderId>-<unixnano>.json
func ObjectKey(orderID string, at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("callbacks/%04d/%02d/%s-%d.json", at.Year(), int(at.Month()), orderID, at.UnixNano())
}
