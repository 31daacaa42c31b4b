// Package storage keeps uploaded beer photos. Objects are addressed by a
// relative key that is persisted on the beer row.
package storage

import (
	"context"
	"errors"
)

var ErrObjectNotFound = errors.New("storage object not found")

type Storage interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// Size returns ErrObjectNotFound when the key does not exist.
	Size(ctx context.Context, key string) (int64, error)
	URL(key string) string
}
