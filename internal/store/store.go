// Package store fetches the raw bytes of a message from whatever backs a
// source key: a local path, or an S3/MinIO object.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key does not resolve to any object.
var ErrNotFound = errors.New("store: not found")

// Store fetches the raw bytes addressed by key.
type Store interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}
