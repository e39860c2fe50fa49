// Package store defines the remote blob store boundary. The store is a
// key-value service keyed by filename; the four canonical tables plus
// opaque document and signature-image blobs live behind it.
package store

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable wraps any transport/backend failure. The core does
	// not retry; retry policy belongs to the collaborator.
	ErrUnavailable = errors.New("store unavailable")
)

// Store reads and writes whole blobs. Read returns (nil, "", nil) for an
// absent blob. Write creates when existingRef is empty and overwrites in
// place otherwise, returning the (possibly new) ref.
type Store interface {
	Read(ctx context.Context, name string) (data []byte, ref string, err error)
	Write(ctx context.Context, name string, data []byte, existingRef string) (ref string, err error)
}

// Locker serializes writers per table name (advisory; the store itself
// has no row-level locking). Unlock is returned by a successful Lock.
type Locker interface {
	Lock(ctx context.Context, name string) (unlock func(), err error)
}

// NopLocker satisfies Locker for single-process deployments and tests.
type NopLocker struct{}

func (NopLocker) Lock(ctx context.Context, name string) (func(), error) {
	return func() {}, nil
}
