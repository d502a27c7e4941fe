package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
)

// CleanupResult counts what a cleanup run removed.
type CleanupResult struct {
	BinariesRemoved   uint64 `json:"binariesRemoved" yaml:"binariesRemoved"`
	GraphNodesRemoved uint64 `json:"graphNodesRemoved" yaml:"graphNodesRemoved"`
}

// Cleanup removes orphan artifacts: binary payloads no live resource
// record owns, and auxiliary graph nodes whose owning resource no
// longer exists. Orphan detection is based on the presence of an owning
// record, never on reference counts, so a resource that is merely the
// target of someone else's dangling reference is never touched. Every
// removal is logged for auditability. Running cleanup twice in a row
// removes nothing the second time.
func (r *Repository) Cleanup(ctx context.Context) (CleanupResult, error) {
	var out CleanupResult

	// reverse index of payload keys referenced by live records, plus
	// the live UID set for the auxiliary node sweep
	liveKeys := make(map[string]struct{})
	liveUIDs := make(map[model.UID]struct{})
	rtxn, err := r.graph.Begin(false)
	if err != nil {
		return out, err
	}
	err = rtxn.Resources(func(rec *model.ResourceRecord) error {
		liveUIDs[rec.UID] = struct{}{}
		if rec.HasBinary() {
			liveKeys[model.GetBlobPathToPayload(rec.Binary.Algorithm, rec.Binary.Digest)] = struct{}{}
		}
		return nil
	})
	rtxn.Discard()
	if err != nil {
		return out, err
	}

	// pass 1: orphan payloads
	keys, err := r.blobs.Keys(ctx)
	if err != nil {
		return out, err
	}
	for _, key := range keys {
		if err := cancelled(ctx); err != nil {
			return out, err
		}
		if _, live := liveKeys[key]; live {
			continue
		}
		attr, aerr := r.blobs.GetAttr(ctx, key)
		if aerr != nil {
			return out, aerr
		}
		if err := r.blobs.Delete(ctx, key); err != nil {
			return out, err
		}
		out.BinariesRemoved++
		r.l.Info("cleanup removed orphan payload",
			zap.String("key", key),
			zap.Int64("size", attr.Size),
		)
	}

	// pass 2: orphan auxiliary nodes
	removed, err := r.sweepAuxNodes(ctx, liveUIDs)
	if err != nil {
		return out, err
	}
	out.GraphNodesRemoved = removed
	return out, nil
}

func (r *Repository) sweepAuxNodes(ctx context.Context, liveUIDs map[model.UID]struct{}) (uint64, error) {
	var subjects map[string]struct{}
	err := r.retryWrite(func(txn store.Txn) error {
		subjects = make(map[string]struct{})
		var doomed []model.Triple
		scanned := 0
		err := txn.Triples(func(t model.Triple) error {
			scanned++
			if scanned%cancelCheckInterval == 0 {
				if err := cancelled(ctx); err != nil {
					return err
				}
			}
			if !r.ns.IsAuxiliary(t.Subject) {
				return nil
			}
			owner, ok := r.ns.OwnerOf(t.Subject)
			if !ok {
				return nil
			}
			if _, live := liveUIDs[owner]; live {
				return nil
			}
			doomed = append(doomed, t)
			subjects[t.Subject] = struct{}{}
			return nil
		})
		if err != nil {
			return err
		}
		for _, t := range doomed {
			if err := txn.DeleteTriple(t); err != nil {
				return err
			}
			r.l.Info("cleanup removed orphan graph statement",
				zap.String("subject", t.Subject),
				zap.String("predicate", t.Predicate),
			)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return uint64(len(subjects)), nil
}
