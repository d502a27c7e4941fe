// Package status exports errors produced by binary store implementations.
package status

import (
	"github.com/lakeland-data/lakeland/pkg/errors"
)

var (
	// ErrNotFound indicates the key holds no payload.
	ErrNotFound = errors.New("payload not found")

	// ErrInvalidKey indicates a key outside the store's key space, e.g.
	// one that collides with the staging area.
	ErrInvalidKey = errors.New("invalid payload key")
)
