package admin

import (
	"context"

	"github.com/lakeland-data/lakeland/pkg/model"
)

// Stats are the aggregate counters of one repository instance. The
// protocol root resource and its own metadata are excluded from the
// counters: they exist in every valid repository, so a freshly
// bootstrapped instance reports all zeros.
type Stats struct {
	ResourceCount        uint64 `json:"resourceCount" yaml:"resourceCount"`
	BinaryCount          uint64 `json:"binaryCount" yaml:"binaryCount"`
	TotalBinarySizeBytes uint64 `json:"totalBinarySizeBytes" yaml:"totalBinarySizeBytes"`
	GraphTripleCount     uint64 `json:"graphTripleCount" yaml:"graphTripleCount"`

	// StoreSizeBytes is the combined on-disk footprint: the graph
	// store's LSM and value log plus all payload bytes.
	StoreSizeBytes uint64 `json:"storeSizeBytes" yaml:"storeSizeBytes"`
}

// Stats computes repository-wide counters from a read-only graph scope
// plus one enumeration pass over the binary store. No side effects; an
// empty repository yields all-zero counters.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var out Stats

	txn, err := r.graph.Begin(false)
	if err != nil {
		return out, err
	}
	defer txn.Discard()

	if out.ResourceCount, err = txn.CountResources(); err != nil {
		return out, err
	}
	if out.GraphTripleCount, err = txn.CountTriples(); err != nil {
		return out, err
	}

	// discount the protocol root and its metadata
	if _, rerr := txn.GetResource(model.RootUID); rerr == nil {
		if out.ResourceCount > 0 {
			out.ResourceCount--
		}
		var rootOwned uint64
		rerr = txn.TriplesForSubject(r.ns.URIFor(model.RootUID), func(model.Triple) error {
			rootOwned++
			return nil
		})
		if rerr != nil {
			return out, rerr
		}
		if out.GraphTripleCount >= rootOwned {
			out.GraphTripleCount -= rootOwned
		}
	}

	keys, err := r.blobs.Keys(ctx)
	if err != nil {
		return out, err
	}
	for _, key := range keys {
		if err := cancelled(ctx); err != nil {
			return out, err
		}
		attr, err := r.blobs.GetAttr(ctx, key)
		if err != nil {
			return out, err
		}
		out.BinaryCount++
		out.TotalBinarySizeBytes += uint64(attr.Size)
	}

	out.StoreSizeBytes = r.graph.SizeBytes() + out.TotalBinarySizeBytes
	return out, nil
}
