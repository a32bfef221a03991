// Package store holds the record list in memory and persists it wholesale to
// a local key-value slot after every mutation.
package store

import (
	"context"
	"errors"
)

// ErrPayloadTooLarge is returned by a KV when a write exceeds its quota,
// typically because of embedded base64 images.
var ErrPayloadTooLarge = errors.New("payload exceeds storage quota")

// KV is the durable key-value facility the snapshot lives in: get/set by key,
// whole values only.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites any prior value under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
