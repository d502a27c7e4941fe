package badger

import (
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v3"
	jsoniter "github.com/json-iterator/go"

	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store/status"
)

type graphTxn struct {
	txn   *badger.Txn
	write bool
	done  bool

	releaseOnce sync.Once
	release     func()
}

func (t *graphTxn) Commit() error {
	if t.done {
		return status.ErrTxnDone
	}
	t.done = true
	err := t.txn.Commit()
	t.releaseOnce.Do(t.release)
	return badgerRewriteError(err)
}

func (t *graphTxn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.txn.Discard()
	t.releaseOnce.Do(t.release)
}

func (t *graphTxn) guardWrite() error {
	if t.done {
		return status.ErrTxnDone
	}
	if !t.write {
		return status.ErrReadOnlyTxn
	}
	return nil
}

func (t *graphTxn) GetResource(uid model.UID) (*model.ResourceRecord, error) {
	if t.done {
		return nil, status.ErrTxnDone
	}
	item, err := t.txn.Get(resourceKey(uid))
	if err != nil {
		return nil, badgerRewriteError(err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, badgerRewriteError(err)
	}
	var rec model.ResourceRecord
	if e := jsoniter.Unmarshal(data, &rec); e != nil {
		return nil, fmt.Errorf("resource record unmarshal failed for %q: %w", uid, e)
	}
	return &rec, nil
}

func (t *graphTxn) PutResource(rec *model.ResourceRecord) error {
	if err := t.guardWrite(); err != nil {
		return err
	}
	if err := rec.UID.Validate(); err != nil {
		return err
	}
	data, err := jsoniter.Marshal(rec)
	if err != nil {
		return fmt.Errorf("resource record marshal failed for %q: %w", rec.UID, err)
	}
	return badgerRewriteError(t.txn.Set(resourceKey(rec.UID), data))
}

func (t *graphTxn) DeleteResource(uid model.UID) error {
	if err := t.guardWrite(); err != nil {
		return err
	}
	return badgerRewriteError(t.txn.Delete(resourceKey(uid)))
}

func (t *graphTxn) Resources(fn func(*model.ResourceRecord) error) error {
	if t.done {
		return status.ErrTxnDone
	}
	it := t.txn.NewIterator(badger.IteratorOptions{
		Prefix:         resourcePrefix,
		PrefetchSize:   1024,
		PrefetchValues: true,
	})
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		data, err := it.Item().ValueCopy(nil)
		if err != nil {
			return badgerRewriteError(err)
		}
		var rec model.ResourceRecord
		if e := jsoniter.Unmarshal(data, &rec); e != nil {
			return fmt.Errorf("resource record unmarshal failed for key %q: %w", it.Item().Key(), e)
		}
		if e := fn(&rec); e != nil {
			return e
		}
	}
	return nil
}

func (t *graphTxn) PutTriple(tr model.Triple) error {
	if err := t.guardWrite(); err != nil {
		return err
	}
	data, err := jsoniter.Marshal(tr)
	if err != nil {
		return fmt.Errorf("triple marshal failed: %w", err)
	}
	return badgerRewriteError(t.txn.Set(tripleKey(tr), data))
}

func (t *graphTxn) DeleteTriple(tr model.Triple) error {
	if err := t.guardWrite(); err != nil {
		return err
	}
	return badgerRewriteError(t.txn.Delete(tripleKey(tr)))
}

func (t *graphTxn) Triples(fn func(model.Triple) error) error {
	return t.scanTriples(triplePrefix, fn)
}

func (t *graphTxn) TriplesForSubject(subject string, fn func(model.Triple) error) error {
	return t.scanTriples(subjectScanPrefix(subject), fn)
}

func (t *graphTxn) scanTriples(prefix []byte, fn func(model.Triple) error) error {
	if t.done {
		return status.ErrTxnDone
	}
	it := t.txn.NewIterator(badger.IteratorOptions{
		Prefix:         prefix,
		PrefetchSize:   1024,
		PrefetchValues: true,
	})
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		data, err := it.Item().ValueCopy(nil)
		if err != nil {
			return badgerRewriteError(err)
		}
		var tr model.Triple
		if e := jsoniter.Unmarshal(data, &tr); e != nil {
			return fmt.Errorf("triple unmarshal failed for key %q: %w", it.Item().Key(), e)
		}
		if e := fn(tr); e != nil {
			return e
		}
	}
	return nil
}

func (t *graphTxn) CountResources() (uint64, error) {
	return t.countKeys(resourcePrefix)
}

func (t *graphTxn) CountTriples() (uint64, error) {
	return t.countKeys(triplePrefix)
}

func (t *graphTxn) countKeys(prefix []byte) (uint64, error) {
	if t.done {
		return 0, status.ErrTxnDone
	}
	it := t.txn.NewIterator(badger.IteratorOptions{
		Prefix:         prefix,
		PrefetchValues: false,
	})
	defer it.Close()
	var n uint64
	for it.Rewind(); it.Valid(); it.Next() {
		n++
	}
	return n, nil
}
