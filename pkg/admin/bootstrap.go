package admin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
)

// Bootstrap destructively reinitializes both stores to an empty but
// valid state: an empty graph holding only the root resource metadata,
// and a recreated binary store scaffold.
//
// The facade never assumes confirmation; callers pass confirmed=true
// only after obtaining it. Sequencing: the graph store is wiped and the
// root resource committed first; the binary store is only touched after
// a successful graph commit. A binary store failure past that point
// surfaces as ErrPartialBootstrap and is not retried: the repository is
// left in a documented inconsistent state for manual remediation.
func (r *Repository) Bootstrap(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return status.ErrNotConfirmed
	}
	if err := cancelled(ctx); err != nil {
		return err
	}

	if err := r.graph.DropAll(); err != nil {
		return err
	}

	txn, err := r.graph.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Discard()
	if err := r.initRoot(txn); err != nil {
		// rolled back by the deferred Discard; binary store untouched
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}

	// graph is committed: any failure from here on leaves the stores
	// inconsistent and must be surfaced loudly
	if err := r.blobs.Clear(ctx); err != nil {
		return status.ErrPartialBootstrap.Wrap(err)
	}
	if err := r.blobs.Initialize(); err != nil {
		return status.ErrPartialBootstrap.Wrap(err)
	}

	r.l.Info("repository bootstrapped",
		zap.Stringer("graph_store", r.graph),
		zap.Stringer("binary_store", r.blobs),
	)
	return nil
}

// initRoot writes the minimal root-resource metadata required by the
// repository protocol.
func (r *Repository) initRoot(txn store.Txn) error {
	now := time.Now().UTC()
	rec := &model.ResourceRecord{
		UID:      model.RootUID,
		Created:  now,
		Modified: now,
		Types: []string{
			model.ClassResource,
			model.ClassContainer,
			model.ClassBasicContainer,
			model.ClassRepositoryRoot,
		},
	}
	rootURI := r.ns.URIFor(model.RootUID)
	triples := make([]model.Triple, 0, len(rec.Types)+2)
	for _, class := range rec.Types {
		triples = append(triples, model.Triple{
			Subject:   rootURI,
			Predicate: model.PredType,
			Object:    model.IRI(class),
		})
	}
	stamp := now.Format(time.RFC3339Nano)
	triples = append(triples,
		model.Triple{
			Subject:   rootURI,
			Predicate: model.PredCreated,
			Object:    model.TypedLiteral(stamp, model.TypeDateTime),
		},
		model.Triple{
			Subject:   rootURI,
			Predicate: model.PredModified,
			Object:    model.TypedLiteral(stamp, model.TypeDateTime),
		},
	)
	return putResource(txn, rec, triples)
}
