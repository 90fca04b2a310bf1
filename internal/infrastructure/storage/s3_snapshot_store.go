// Package storage keeps the latest complete report of each type per tenant,
// in S3-compatible object storage or in memory.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/report"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	infraconfig "github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// objectAPI is the subset of *s3.Client the snapshot store uses
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3SnapshotStore stores report snapshots as JSON objects. Each tenant and
// report type has one object that every successful run overwrites.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, RustFS).
type S3SnapshotStore struct {
	client objectAPI
	bucket string
	logger *zap.Logger
}

// S3SnapshotStoreOption is a functional option for configuring S3SnapshotStore
type S3SnapshotStoreOption func(*S3SnapshotStore)

// WithLogger sets a custom logger for S3SnapshotStore
func WithLogger(logger *zap.Logger) S3SnapshotStoreOption {
	return func(s *S3SnapshotStore) {
		s.logger = logger
	}
}

// NewS3SnapshotStore creates an S3SnapshotStore from configuration
func NewS3SnapshotStore(cfg *infraconfig.StorageConfig, opts ...S3SnapshotStoreOption) (*S3SnapshotStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	endpoint := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return newS3SnapshotStore(client, cfg.Bucket, opts...), nil
}

func newS3SnapshotStore(client objectAPI, bucket string, opts ...S3SnapshotStoreOption) *S3SnapshotStore {
	s := &S3SnapshotStore{client: client, bucket: bucket, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// EnsureBucket creates the bucket if it doesn't exist. Call it at startup.
func (s *S3SnapshotStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating report snapshot bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// SnapshotKey is the object key of the latest snapshot for a tenant and type
func SnapshotKey(tenantID uuid.UUID, reportType report.Type) string {
	return fmt.Sprintf("reports/%s/%s/latest.json", tenantID, reportType)
}

// Put overwrites the snapshot for the report's tenant and type
func (s *S3SnapshotStore) Put(ctx context.Context, rep *report.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report snapshot: %w", err)
	}

	key := SnapshotKey(rep.TenantID, rep.Type)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report snapshot: %w", err)
	}

	s.logger.Debug("Stored report snapshot",
		zap.String("key", key),
		zap.Int("bytes", len(body)),
	)
	return nil
}

// GetLatest reads the stored snapshot. A missing object is shared.ErrNotFound.
func (s *S3SnapshotStore) GetLatest(ctx context.Context, tenantID uuid.UUID, reportType report.Type) (*report.Report, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(SnapshotKey(tenantID, reportType)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download report snapshot: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report snapshot: %w", err)
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report snapshot: %w", err)
	}
	return &rep, nil
}
