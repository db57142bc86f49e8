package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned by Set when a write would exceed the store's
// configured capacity. Callers treat it as a no-op: prior state is preserved.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// Store is the string-keyed storage port behind the history, user, and
// preference repositories. Writes are last-write-wins; there is no
// transactional guarantee across a read-modify-write cycle.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
