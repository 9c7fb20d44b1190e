package storage

import (
	"CurtainSamples/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound объекта с таким ключом нет.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	// Put пишет объект под ключом. Локальный backend отказывает, если ключ занят,
	// MinIO перезаписывает объект. Вызывающий код выдаёт уникальные ключи (uuid-префикс).
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// New выбирает backend по конфигурации и готовит его к работе.
func New(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.UploadBackend {
	case config.UploadBackendMinio:
		backend, err = NewMinioClient(cfg.Minio)
	default:
		backend, err = NewLocalStorage(cfg.UploadDir)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.UploadBackend, err)
	}
	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", backend.Bucket(), err)
	}
	return backend, nil
}
