package badger

import (
	badger "github.com/dgraph-io/badger/v3"

	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store/status"
)

var (
	resourcePrefix = []byte("res:")
	triplePrefix   = []byte("spo:")
)

// keySep separates key components. IRIs and UIDs cannot contain NUL,
// so the separator never collides with content. Triples are decoded
// from their stored value, never from the key, so literal objects may
// contain any byte.
const keySep = byte(0x00)

func resourceKey(uid model.UID) []byte {
	return append(resourcePrefix[:len(resourcePrefix):len(resourcePrefix)], uid...)
}

func tripleKey(t model.Triple) []byte {
	k := subjectScanPrefix(t.Subject)
	k = append(k, t.Predicate...)
	k = append(k, keySep)
	k = append(k, byte('0'+t.Object.Kind))
	k = append(k, t.Object.Value...)
	k = append(k, keySep)
	k = append(k, t.Object.Datatype...)
	k = append(k, keySep)
	k = append(k, t.Object.Lang...)
	return k
}

// subjectScanPrefix is the key prefix covering every triple with the
// given subject.
func subjectScanPrefix(subject string) []byte {
	k := append(triplePrefix[:len(triplePrefix):len(triplePrefix)], subject...)
	return append(k, keySep)
}

func badgerRewriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return status.ErrResourceNotFound
	case errors.Is(err, badger.ErrConflict):
		return status.ErrTxnConflict.Wrap(err)
	case errors.Is(err, badger.ErrDiscardedTxn):
		return status.ErrTxnDone.Wrap(err)
	default:
		return err
	}
}
