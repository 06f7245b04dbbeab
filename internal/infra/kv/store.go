// Package kv is the key-value storage the site keeps its records in.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Entry struct {
	Key   string
	Value []byte
}

// Store is kept minimal so the backends stay swappable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetAll writes every entry or none of them.
	SetAll(ctx context.Context, entries []Entry) error
	// SetIf writes value when cond accepts the current value (nil if the key
	// is missing). The check and the write share one transaction.
	SetIf(ctx context.Context, key string, value []byte, cond func(current []byte) bool) (bool, error)
	Close() error
}
