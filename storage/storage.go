// Package storage holds the key/value backends a cart is persisted to.
//
// Every backend stores opaque string values under string keys. A missing key
// is reported through the found flag, never as an error.
package storage

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("storage is closed")

type KeyValueStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by backends that can report whether they are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks kv when it implements Pinger and reports nil otherwise.
func Ping(ctx context.Context, kv KeyValueStorage) error {
	if p, ok := kv.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
