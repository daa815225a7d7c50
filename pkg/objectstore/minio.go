package objectstore

import (
	"fmt"

	"makanApa/pkg/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Lake.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Lake.AccessKey, cfg.Lake.SecretKey, ""),
		Secure: cfg.Lake.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return client, nil
}
