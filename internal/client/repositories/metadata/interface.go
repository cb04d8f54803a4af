// Package metadata is the local key/value table backing durable client
// state. Every entry remembers when it was last written.
package metadata

import (
	"context"
	"time"
)

type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	// Get reports ok=false, with a nil error, for a missing key.
	Get(ctx context.Context, key string) (e Entry, ok bool, err error)
	Put(ctx context.Context, key, value string, at time.Time) error
	// Delete removes the given keys and returns how many existed.
	Delete(ctx context.Context, keys ...string) (int64, error)
	ListPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
