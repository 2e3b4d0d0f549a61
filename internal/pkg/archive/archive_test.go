package archive

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/LeadPay/internal/pkg/env"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, time.March, 5, 10, 0, 0, 42, time.UTC)
	assert.Equal(t, "callbacks/2024/03/ORDERAB-1709632800000000042.json", ObjectKey("ORDERAB", at))
}

func TestArchiveCallback(t *testing.T) {
	putter := &fakePutter{}
	c := newClient(putter, "leadpay-archive")
	at := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return at }

	err := c.ArchiveCallback(context.Background(), "ORDER1", map[string]string{"STATUS": "TXN_SUCCESS"})
	require.NoError(t, err)
	require.Len(t, putter.inputs, 1)

	in := putter.inputs[0]
	assert.Equal(t, "leadpay-archive", aws.ToString(in.Bucket))
	assert.Equal(t, ObjectKey("ORDER1", at), aws.ToString(in.Key))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))

	var got record
	require.NoError(t, json.Unmarshal(putter.bodies[0], &got))
	assert.Equal(t, "ORDER1", got.OrderID)
	assert.Equal(t, "TXN_SUCCESS", got.Fields["STATUS"])
}

func TestArchiveCallbackError(t *testing.T) {
	c := newClient(&fakePutter{err: errors.New("boom")}, "b")
	err := c.ArchiveCallback(context.Background(), "ORDER1", map[string]string{})
	assert.ErrorContains(t, err, "boom")
}

func TestLoadConfigRequiresBucketWhenEnabled(t *testing.T) {
	env.Env = map[string]string{
		"S3_ARCHIVE_ENABLED":   "true",
		"S3_ACCESS_KEY_ID":     "key",
		"S3_SECRET_ACCESS_KEY": "secret",
	}
	t.Cleanup(func() { env.Env = nil })

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")

	env.Env["S3_BUCKET_NAME"] = "bucket"
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
}

func TestNewClientDisabled(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{})
	assert.Error(t, err)
}
