// Package blob defines the binary store abstraction: a flat K/V store
// of payload bytes keyed by content-addressed paths.
//
// Typically this is something file system-like. Implementations of this
// interface are assumed to be fairly simple.
package blob

import (
	"context"
	"io"
)

// Attrs carries the attributes of one stored payload.
type Attrs struct {
	Size int64
}

// Store implementations know how to persist payload bytes under a key.
//
// Writes must be atomic with respect to crashes: a payload must never
// become visible under its final key until all its bytes are on disk.
type Store interface {
	String() string

	// Initialize creates the store root scaffold. Safe to call twice.
	Initialize() error

	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	GetAttr(context.Context, string) (Attrs, error)
	Put(context.Context, string, io.Reader) error
	Delete(context.Context, string) error

	// Keys enumerates every stored payload key.
	Keys(context.Context) ([]string, error)

	// Clear removes all payloads and the store scaffold.
	Clear(context.Context) error
}
