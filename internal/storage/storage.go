package storage

import (
	"context"
	"io"
	"time"
)

// Service stores user avatars in remote object storage.
type Service interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
