package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2/log"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client writes verified gateway callbacks to S3
type Client struct {
	s3     objectPutter
	bucket string
	now    func() time.Time
}

type record struct {
	OrderID    string            `json:"orderId"`
	ReceivedAt time.Time         `json:"receivedAt"`
	Fields     map[string]string `json:"fields"`
}

// NewClient creates an archive client for the configured bucket
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("callback archive is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	log.Infof("[Archive] Archiving callbacks to bucket: %s", cfg.BucketName)
	return newClient(s3Client, cfg.BucketName), nil
}

func newClient(putter objectPutter, bucket string) *Client {
	return &Client{s3: putter, bucket: bucket, now: time.Now}
}

// ArchiveCallback stores the callback fields as one JSON object
func (c *Client) ArchiveCallback(ctx context.Context, orderID string, fields map[string]string) error {
	at := c.now()
	body, err := json.Marshal(record{OrderID: orderID, ReceivedAt: at.UTC(), Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to encode callback: %w", err)
	}

	key := ObjectKey(orderID, at)
	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata: map[string]string{
			"order-id":      orderID,
			"upload-source": "leadpay-callback",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload callback %s: %w", key, err)
	}

	log.Infof("[Archive] Stored callback: s3://%s/%s", c.bucket, key)
	return nil
}
