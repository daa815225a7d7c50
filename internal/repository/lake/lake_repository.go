package lake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"makanApa/domain"

	"github.com/minio/minio-go/v7"
)

// LakeRepository is the object store gateway over a MinIO bucket. All layer
// reads and writes of the pipeline go through it, including the freshest-wins
// selection policy in Latest.
type LakeRepository struct {
	client *minio.Client
	bucket string
}

func NewLakeRepository(client *minio.Client, bucket string) *LakeRepository {
	return &LakeRepository{
		client: client,
		bucket: bucket,
	}
}

func (r *LakeRepository) List(ctx context.Context, prefix string) ([]domain.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var infos []domain.ObjectInfo

	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		infos = append(infos, domain.ObjectInfo{
			Key:          obj.Key,
			LastModified: obj.LastModified,
		})
	}

	return infos, nil
}

func (r *LakeRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", domain.ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

func (r *LakeRepository) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	_, err := r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}

	return nil
}

// Latest resolves the single most-recently-modified object under prefix.
// Every silver and gold reader selects its input through this, never by
// merging history.
func (r *LakeRepository) Latest(ctx context.Context, prefix string) (string, error) {
	infos, err := r.List(ctx, prefix)
	if err != nil {
		return "", err
	}

	return LatestOf(infos, prefix)
}

// LatestOf picks the freshest key from a listing. Split out so the selection
// policy is testable without a live store.
func LatestOf(infos []domain.ObjectInfo, prefix string) (string, error) {
	if len(infos) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrNoData, prefix)
	}

	best := infos[0]
	for _, info := range infos[1:] {
		if info.LastModified.After(best.LastModified) {
			best = info
		}
	}

	return best.Key, nil
}
