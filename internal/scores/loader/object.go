package loader

import (
	"context"
	"fmt"

	"oppscore_backend/internal/scores/domain"
	"oppscore_backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinIOClient creates a MinIO client for fetching the lookup table from
// object storage.
func NewMinIOClient(cfg config.MinIOConfig) (*minio.Client, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return client, nil
}

// LoadObject streams the lookup table CSV from a bucket object. The offline
// model run delivers its export there when the service does not share a
// filesystem with it.
func LoadObject(ctx context.Context, client *minio.Client, bucket, key string) ([]domain.ScoreRecord, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch lookup table %s/%s: %w", bucket, key, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	rows, err := LoadCSV(obj)
	if err != nil {
		return nil, fmt.Errorf("lookup table %s/%s: %w", bucket, key, err)
	}
	return rows, nil
}
