package database

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KeyValueStore is the durable storage the favorites store writes through to.
// Values are opaque to the store; the favorites package owns their encoding.
type KeyValueStore interface {
	// Read returns the value stored under key. found is false when nothing is stored.
	Read(ctx context.Context, key string) (value []byte, found bool, err error)
	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
