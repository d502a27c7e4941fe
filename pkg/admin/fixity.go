package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	blobstatus "github.com/lakeland-data/lakeland/pkg/blob/status"
	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
	storestatus "github.com/lakeland-data/lakeland/pkg/store/status"
)

// FixityResult reports one fixity verification.
type FixityResult struct {
	UID            model.UID `json:"uid" yaml:"uid"`
	OK             bool      `json:"ok" yaml:"ok"`
	Algorithm      string    `json:"algorithm" yaml:"algorithm"`
	ExpectedDigest string    `json:"expectedDigest" yaml:"expectedDigest"`
	ActualDigest   string    `json:"actualDigest" yaml:"actualDigest"`
	SizeBytes      uint64    `json:"sizeBytes" yaml:"sizeBytes"`
}

// CheckFixity recomputes the digest of a resource's current payload
// bytes with the algorithm recorded in its digest record and compares.
// A mismatch is reported, never auto-repaired: the stored record is
// left untouched. Missing payload bytes count as a failed check, since
// that too is a divergence between record and store.
func (r *Repository) CheckFixity(ctx context.Context, uid model.UID) (FixityResult, error) {
	var out FixityResult
	if err := uid.Validate(); err != nil {
		return out, err
	}

	txn, err := r.graph.Begin(false)
	if err != nil {
		return out, err
	}
	defer txn.Discard()

	rec, err := txn.GetResource(uid)
	if err != nil {
		if errors.Is(err, storestatus.ErrResourceNotFound) {
			return out, status.ErrResourceNotFound.Wrap(err)
		}
		return out, err
	}
	if !rec.HasBinary() {
		return out, status.ErrNoBinaryPayload
	}

	out.UID = uid
	out.Algorithm = rec.Binary.Algorithm
	out.ExpectedDigest = rec.Binary.Digest
	out.SizeBytes = rec.Binary.Size

	key := model.GetBlobPathToPayload(rec.Binary.Algorithm, rec.Binary.Digest)
	rd, err := r.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, blobstatus.ErrNotFound) {
			r.l.Warn("fixity check found no payload bytes",
				zap.String("uid", string(uid)),
				zap.String("key", key),
			)
			return out, nil // OK stays false, actual digest stays empty
		}
		return out, err
	}
	defer func() {
		_ = rd.Close()
	}()

	ok, actual, err := fixity.Verify(*rec.Binary, rd)
	if err != nil {
		return out, err
	}
	out.OK = ok
	out.ActualDigest = actual
	if !ok {
		r.l.Warn("fixity mismatch",
			zap.String("uid", string(uid)),
			zap.String("expected", out.ExpectedDigest),
			zap.String("actual", actual),
		)
	}
	return out, nil
}
