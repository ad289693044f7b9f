package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/engnet/backoffice-api/internal/core/ports"
)

const defaultPrefix = "reports"

// Config holds the S3-compatible endpoint used to archive reports.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// ReportArchive uploads generated workbooks to object storage.
type ReportArchive struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewReportArchive(cfg Config) (*ReportArchive, error) {
	// minio-go expects host:port without a scheme.
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("report archive: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ReportArchive{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (a *ReportArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	return nil
}

// Store uploads the report under <prefix>/<filename>.
func (a *ReportArchive) Store(ctx context.Context, report *ports.Report) error {
	key := ObjectKey(a.prefix, report.Filename)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(report.Data), int64(len(report.Data)),
		minio.PutObjectOptions{
			ContentType:  report.ContentType,
			UserMetadata: map[string]string{"report-kind": report.Kind},
		})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable.
func (a *ReportArchive) Ping(ctx context.Context) error {
	_, err := a.client.BucketExists(ctx, a.bucket)
	return err
}

// ObjectKey joins prefix and filename into an object key.
func ObjectKey(prefix, filename string) string {
	return path.Join(prefix, path.Base(filename))
}
