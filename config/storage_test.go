package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ConfigRequiresBucket(t *testing.T) {
	_, err := NewS3Config(context.Background(), Default())
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")
}

func TestNewS3ConfigCustomEndpoint(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg := Default()
	cfg.S3Bucket = "recipes-exports"
	cfg.S3Endpoint = "http://localhost:9000"

	s3Cfg, err := NewS3Config(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, s3Cfg.Client)
	assert.Equal(t, "recipes-exports", s3Cfg.BucketName)
	assert.Equal(t, "us-east-1", s3Cfg.Client.Options().Region)
	assert.True(t, s3Cfg.Client.Options().UsePathStyle)
}
