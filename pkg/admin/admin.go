// Package admin implements the administration facade of the repository:
// bootstrap, aggregate statistics, fixity verification, referential
// integrity checking, orphan cleanup and portable dump/load.
//
// The facade coordinates two independently failing stores: the graph
// store holding RDF metadata and the binary store holding payload
// bytes. Every graph mutation runs inside a transaction scope; binary
// writes rely on the store's atomic staged puts.
package admin

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/blob"
	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
	storestatus "github.com/lakeland-data/lakeland/pkg/store/status"
)

const (
	defaultMaxParallel = 10

	// commit conflicts on badger blind writes are transient; scope
	// conflicts are not and always surface immediately
	commitRetryInterval = 10 * time.Millisecond
	commitRetryMax      = 5
)

// Repository is the administration facade over one repository instance.
// Store handles are injected so several instances can coexist in one
// process and tests get clean teardown.
type Repository struct {
	graph store.Store
	blobs blob.Store

	ns          model.Namespace
	algo        string
	maxParallel int
	archiveFs   afero.Fs
	l           *zap.Logger
}

// Option modifies the facade construction.
type Option func(*Repository)

// WithLogger sets a zap logger. Defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// WithNamespace sets the private URI namespace of the instance.
func WithNamespace(ns model.Namespace) Option {
	return func(r *Repository) {
		if ns != "" {
			r.ns = ns
		}
	}
}

// WithDigestAlgorithm sets the digest algorithm recorded on new payloads.
func WithDigestAlgorithm(algo string) Option {
	return func(r *Repository) {
		if algo != "" {
			r.algo = algo
		}
	}
}

// WithMaxParallel bounds the parallelism of dump binary copies.
func WithMaxParallel(parallel int) Option {
	return func(r *Repository) {
		if parallel > 0 {
			r.maxParallel = parallel
		}
	}
}

// WithArchiveFs sets the filesystem dump trees are written to and load
// trees are read from. Defaults to the OS filesystem.
func WithArchiveFs(fs afero.Fs) Option {
	return func(r *Repository) {
		if fs != nil {
			r.archiveFs = fs
		}
	}
}

// NewRepository builds the facade over initialized store handles.
func NewRepository(graph store.Store, blobs blob.Store, opts ...Option) *Repository {
	r := &Repository{
		graph:       graph,
		blobs:       blobs,
		ns:          model.DefaultNamespace,
		algo:        fixity.AlgoBlake2b,
		maxParallel: defaultMaxParallel,
		archiveFs:   afero.NewOsFs(),
		l:           zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Namespace returns the private URI namespace of this instance.
func (r *Repository) Namespace() model.Namespace {
	return r.ns
}

// retryWrite runs fn inside a write transaction scope. Scope-acquisition
// conflicts surface immediately; commit-time conflicts from the KV
// engine are transient under a single writer and get a bounded retry.
// The badger store's scope locking makes commit conflicts unreachable
// in-process; the retry covers Store implementations without it.
func (r *Repository) retryWrite(fn func(store.Txn) error) error {
	return backoff.Retry(func() error {
		txn, err := r.graph.Begin(true)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer txn.Discard()
		if err := fn(txn); err != nil {
			return backoff.Permanent(err)
		}
		if err := txn.Commit(); err != nil {
			if errors.Is(err, storestatus.ErrTxnConflict) {
				return err // retry
			}
			return backoff.Permanent(err)
		}
		return nil
	}, backoff.WithMaxRetries(
		backoff.NewConstantBackOff(commitRetryInterval), commitRetryMax))
}

// putResource writes a record and its triples under an open write scope.
func putResource(txn store.Txn, rec *model.ResourceRecord, triples []model.Triple) error {
	if err := txn.PutResource(rec); err != nil {
		return err
	}
	for _, t := range triples {
		if err := txn.PutTriple(t); err != nil {
			return err
		}
	}
	return nil
}

// deleteResourceGraph removes a record and every triple owned by it
// (its own subject plus auxiliary fragment subjects).
func (r *Repository) deleteResourceGraph(txn store.Txn, uid model.UID) error {
	if err := txn.DeleteResource(uid); err != nil {
		return err
	}
	var doomed []model.Triple
	err := txn.Triples(func(t model.Triple) error {
		owner, ok := r.ns.OwnerOf(t.Subject)
		if ok && owner == uid {
			doomed = append(doomed, t)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, t := range doomed {
		if err := txn.DeleteTriple(t); err != nil {
			return err
		}
	}
	return nil
}

// cancelled is sprinkled through long scans so ctx cancellation is
// honored cooperatively.
func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return status.ErrInterrupted.Wrap(ctx.Err())
	default:
		return nil
	}
}
