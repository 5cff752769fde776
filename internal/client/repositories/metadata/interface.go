// Package metadata is a string key/value store backed by the local
// metadata table.
package metadata

import (
	"context"
)

// Repository reads and writes single keys. A missing key is not an error:
// Get reports it through the bool.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) (map[string]string, error)
	Clear(ctx context.Context) error
}
