// Package store defines the graph store abstraction the administration
// layer operates against: a transactional triple/record store with
// snapshot-isolated read scopes and a single-writer discipline.
package store

import (
	"context"

	"github.com/lakeland-data/lakeland/pkg/model"
)

// A Store manages the RDF metadata of one repository instance.
//
// Implementations are expected to be fairly simple wrappers over a
// transactional KV engine. All mutation happens through a write Txn.
type Store interface {
	String() string

	// Initialize opens the underlying database. Safe to call twice.
	Initialize(ctx context.Context) error

	// Close releases the database handle. Safe to call twice.
	Close() error

	// Begin opens a transaction scope. Write scopes are exclusive: a
	// second concurrent write Begin fails with status.ErrTxnConflict
	// instead of blocking. Read scopes see a consistent snapshot as of
	// their open time.
	Begin(write bool) (Txn, error)

	// DropAll destroys every record and triple. Used by bootstrap only.
	// Must not be called while any transaction scope is open.
	DropAll() error

	// SizeBytes reports the on-disk footprint of the store.
	SizeBytes() uint64
}

// A Txn is one transaction scope. Commit applies pending writes;
// Discard drops them and releases the scope. Discard after Commit is a
// no-op, so `defer txn.Discard()` is always safe.
type Txn interface {
	Commit() error
	Discard()

	// GetResource fetches the administrative record for a UID, or
	// status.ErrResourceNotFound.
	GetResource(uid model.UID) (*model.ResourceRecord, error)

	// PutResource upserts a record.
	PutResource(rec *model.ResourceRecord) error

	// DeleteResource removes a record. Missing records are not an error.
	DeleteResource(uid model.UID) error

	// Resources applies fn to every record, in UID order. Returning an
	// error from fn aborts the scan with that error.
	Resources(fn func(*model.ResourceRecord) error) error

	// PutTriple upserts a statement.
	PutTriple(t model.Triple) error

	// DeleteTriple removes a statement. Missing statements are not an error.
	DeleteTriple(t model.Triple) error

	// Triples applies fn to every statement, in key order.
	Triples(fn func(model.Triple) error) error

	// TriplesForSubject applies fn to every statement with the exact
	// given subject.
	TriplesForSubject(subject string, fn func(model.Triple) error) error

	// CountResources counts administrative records.
	CountResources() (uint64, error)

	// CountTriples counts statements.
	CountTriples() (uint64, error)
}
