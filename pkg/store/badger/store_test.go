package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
	"github.com/lakeland-data/lakeland/pkg/store/status"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s := New(t.TempDir())
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func testRecord(uid model.UID) *model.ResourceRecord {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &model.ResourceRecord{
		UID:      uid,
		Created:  now,
		Modified: now,
		Types:    []string{model.ClassResource, model.ClassContainer},
	}
}

func TestBeginBeforeInitialize(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Begin(false)
	require.True(t, errors.Is(err, status.ErrStoreClosed))
}

func TestResourceCRUD(t *testing.T) {
	s := newTestStore(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.PutResource(testRecord("/a")))
	require.NoError(t, txn.Commit())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Discard()

	rec, err := txn.GetResource("/a")
	require.NoError(t, err)
	require.Equal(t, model.UID("/a"), rec.UID)
	require.Equal(t, []string{model.ClassResource, model.ClassContainer}, rec.Types)

	_, err = txn.GetResource("/missing")
	require.True(t, errors.Is(err, status.ErrResourceNotFound))
}

func TestDeleteResourceIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	txn, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, txn.PutResource(testRecord("/a")))
	require.NoError(t, txn.DeleteResource("/a"))
	require.NoError(t, txn.DeleteResource("/a"))
	require.NoError(t, txn.Commit())

	txn, err = s.Begin(false)
	require.NoError(t, err)
	defer txn.Discard()
	_, err = txn.GetResource("/a")
	require.True(t, errors.Is(err, status.ErrResourceNotFound))
}

func TestReadOnlyGuard(t *testing.T) {
	s := newTestStore(t)

	txn, err := s.Begin(false)
	require.NoError(t, err)
	defer txn.Discard()

	require.True(t, errors.Is(txn.PutResource(testRecord("/a")), status.ErrReadOnlyTxn))
	require.True(t, errors.Is(txn.DeleteResource("/a"), status.ErrReadOnlyTxn))
	require.True(t, errors.Is(txn.PutTriple(model.Triple{}), status.ErrReadOnlyTxn))
}

func TestWriteScopeIsExclusive(t *testing.T) {
	s := newTestStore(t)

	w1, err := s.Begin(true)
	require.NoError(t, err)

	// a second write scope fails fast instead of queueing
	_, err = s.Begin(true)
	require.True(t, errors.Is(err, status.ErrTxnConflict))

	// concurrent read scopes are fine
	r, err := s.Begin(false)
	require.NoError(t, err)
	r.Discard()

	w1.Discard()

	w2, err := s.Begin(true)
	require.NoError(t, err)
	w2.Discard()
}

func TestDropAllBlockedByWriteScope(t *testing.T) {
	s := newTestStore(t)

	w, err := s.Begin(true)
	require.NoError(t, err)
	require.True(t, errors.Is(s.DropAll(), status.ErrTxnConflict))
	w.Discard()

	require.NoError(t, s.DropAll())
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Begin(false)
	require.NoError(t, err)
	defer r.Discard()

	w, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, w.PutResource(testRecord("/late")))
	require.NoError(t, w.Commit())

	// the read scope keeps seeing its open-time snapshot
	_, err = r.GetResource("/late")
	require.True(t, errors.Is(err, status.ErrResourceNotFound))

	r2, err := s.Begin(false)
	require.NoError(t, err)
	defer r2.Discard()
	_, err = r2.GetResource("/late")
	require.NoError(t, err)
}

func TestTxnDone(t *testing.T) {
	s := newTestStore(t)

	w, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, w.Commit())
	require.True(t, errors.Is(w.Commit(), status.ErrTxnDone))
	require.True(t, errors.Is(w.PutResource(testRecord("/a")), status.ErrTxnDone))
	w.Discard() // no-op after commit
}

func TestTripleScans(t *testing.T) {
	s := newTestStore(t)
	ns := model.DefaultNamespace

	triples := []model.Triple{
		{Subject: ns.URIFor("/a"), Predicate: model.PredType, Object: model.IRI(model.ClassResource)},
		{Subject: ns.URIFor("/a"), Predicate: model.PredType, Object: model.IRI(model.ClassContainer)},
		{Subject: ns.URIFor("/ab"), Predicate: model.PredType, Object: model.IRI(model.ClassResource)},
		{Subject: ns.URIFor("/a") + "#acl", Predicate: model.PredType, Object: model.IRI("info:x#ACL")},
	}

	w, err := s.Begin(true)
	require.NoError(t, err)
	for _, tr := range triples {
		require.NoError(t, w.PutTriple(tr))
	}
	// upsert of an existing statement is not a duplicate
	require.NoError(t, w.PutTriple(triples[0]))
	require.NoError(t, w.Commit())

	r, err := s.Begin(false)
	require.NoError(t, err)
	defer r.Discard()

	n, err := r.CountTriples()
	require.NoError(t, err)
	require.EqualValues(t, len(triples), n)

	// exact-subject scan must not leak "/ab" or "#acl" statements
	var forA []model.Triple
	require.NoError(t, r.TriplesForSubject(ns.URIFor("/a"), func(tr model.Triple) error {
		forA = append(forA, tr)
		return nil
	}))
	require.Len(t, forA, 2)
	for _, tr := range forA {
		require.Equal(t, ns.URIFor("/a"), tr.Subject)
	}

	var all int
	require.NoError(t, r.Triples(func(model.Triple) error {
		all++
		return nil
	}))
	require.Equal(t, len(triples), all)
}

func TestResourceScanAndCounts(t *testing.T) {
	s := newTestStore(t)

	w, err := s.Begin(true)
	require.NoError(t, err)
	for _, uid := range []model.UID{"/a", "/a/b", "/c"} {
		require.NoError(t, w.PutResource(testRecord(uid)))
	}
	require.NoError(t, w.Commit())

	r, err := s.Begin(false)
	require.NoError(t, err)
	defer r.Discard()

	n, err := r.CountResources()
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	var seen []model.UID
	require.NoError(t, r.Resources(func(rec *model.ResourceRecord) error {
		seen = append(seen, rec.UID)
		return nil
	}))
	require.Equal(t, []model.UID{"/a", "/a/b", "/c"}, seen)
}

func TestDropAllWipesEverything(t *testing.T) {
	s := newTestStore(t)

	w, err := s.Begin(true)
	require.NoError(t, err)
	require.NoError(t, w.PutResource(testRecord("/a")))
	require.NoError(t, w.PutTriple(model.Triple{
		Subject:   model.DefaultNamespace.URIFor("/a"),
		Predicate: model.PredType,
		Object:    model.IRI(model.ClassResource),
	}))
	require.NoError(t, w.Commit())

	require.NoError(t, s.DropAll())

	r, err := s.Begin(false)
	require.NoError(t, err)
	defer r.Discard()
	nr, err := r.CountResources()
	require.NoError(t, err)
	require.Zero(t, nr)
	nt, err := r.CountTriples()
	require.NoError(t, err)
	require.Zero(t, nt)
}
