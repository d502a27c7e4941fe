// Package status exports errors produced by graph store implementations.
package status

import (
	"github.com/lakeland-data/lakeland/pkg/errors"
)

var (
	// ErrTxnConflict indicates that a write transaction scope could not
	// be acquired because another write scope is active.
	ErrTxnConflict = errors.New("write transaction scope already active")

	// ErrTxnDone indicates a commit or write on an already finished scope.
	ErrTxnDone = errors.New("transaction scope already finished")

	// ErrReadOnlyTxn indicates a mutation attempted in a read scope.
	ErrReadOnlyTxn = errors.New("mutation in read-only transaction scope")

	// ErrResourceNotFound indicates a UID with no administrative record.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrStoreClosed indicates use of a store after Close.
	ErrStoreClosed = errors.New("graph store is closed")
)
