package minting

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// AssetStore uploads mint assets (snapshot PNGs, metadata JSON documents)
// and returns a publicly resolvable URL for each object.
type AssetStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// S3Config holds the settings of the S3-compatible bucket that serves mint
// assets. BaseEndpoint supports MinIO and other non-AWS deployments.
type S3Config struct {
	BaseEndpoint string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
}

// S3AssetStore implements AssetStore on an S3-compatible bucket.
type S3AssetStore struct {
	cfg    S3Config
	client *s3.Client
}

// NewS3AssetStore builds an S3 client with static credentials and, when
// configured, a custom base endpoint.
func NewS3AssetStore(ctx context.Context, cfg S3Config) (*S3AssetStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3AssetStore{cfg: cfg, client: client}, nil
}

func (s *S3AssetStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

func (s *S3AssetStore) objectURL(key string) string {
	if s.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.BaseEndpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// RandomStorageKey returns a date-partitioned object key with a random
// suffix, e.g. "certs/2026/8/27/<uuid>". The caller appends the extension.
func RandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("certs/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}
