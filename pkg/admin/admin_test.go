package admin

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/lakeland-data/lakeland/pkg/blob/localfs"
	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
	badgerstore "github.com/lakeland-data/lakeland/pkg/store/badger"
)

// newTestRepository builds a bootstrapped facade over a throwaway badger
// directory and an in-memory binary store. The archive filesystem is
// shared so dump/load tests can move trees between repositories.
func newTestRepository(t *testing.T, archive afero.Fs, opts ...Option) *Repository {
	t.Helper()
	ctx := context.Background()

	graph := badgerstore.New(t.TempDir())
	require.NoError(t, graph.Initialize(ctx))
	t.Cleanup(func() {
		_ = graph.Close()
	})

	blobs := localfs.New(afero.NewMemMapFs())
	require.NoError(t, blobs.Initialize())

	repo := NewRepository(graph, blobs,
		append([]Option{WithArchiveFs(archive), WithMaxParallel(2)}, opts...)...,
	)
	require.NoError(t, repo.Bootstrap(ctx, true))
	return repo
}

// mustCreateResource writes a record, its descriptive triples and, when
// payload is non-nil, content-addressed payload bytes, the way the
// ingest path of the repository server would.
func mustCreateResource(t *testing.T, repo *Repository, uid model.UID, payload []byte, extra ...model.Triple) *model.ResourceRecord {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)
	stamp := now.Format(time.RFC3339Nano)

	rec := &model.ResourceRecord{
		UID:      uid,
		Created:  now,
		Modified: now,
		Types:    []string{model.ClassResource, model.ClassContainer},
	}
	subject := repo.ns.URIFor(uid)
	triples := []model.Triple{
		{Subject: subject, Predicate: model.PredType, Object: model.IRI(model.ClassResource)},
		{Subject: subject, Predicate: model.PredType, Object: model.IRI(model.ClassContainer)},
		{Subject: subject, Predicate: model.PredCreated, Object: model.TypedLiteral(stamp, model.TypeDateTime)},
		{Subject: subject, Predicate: model.PredModified, Object: model.TypedLiteral(stamp, model.TypeDateTime)},
	}

	if payload != nil {
		drec, err := fixity.NewRecord(repo.algo, "application/octet-stream", bytes.NewReader(payload))
		require.NoError(t, err)
		rec.Binary = &drec
		rec.Types = append(rec.Types, model.ClassNonRDFSource)
		triples = append(triples, model.Triple{
			Subject:   subject,
			Predicate: model.PredType,
			Object:    model.IRI(model.ClassNonRDFSource),
		})
		key := model.GetBlobPathToPayload(drec.Algorithm, drec.Digest)
		require.NoError(t, repo.blobs.Put(ctx, key, bytes.NewReader(payload)))
	}

	triples = append(triples, extra...)
	require.NoError(t, repo.retryWrite(func(txn store.Txn) error {
		return putResource(txn, rec, triples)
	}))
	return rec
}

// mustDeleteRecordOnly removes a record without touching its triples,
// simulating the kind of partial delete cleanup exists to repair.
func mustDeleteRecordOnly(t *testing.T, repo *Repository, uid model.UID) {
	t.Helper()
	require.NoError(t, repo.retryWrite(func(txn store.Txn) error {
		return txn.DeleteResource(uid)
	}))
}

// triplesForSubject collects the statements with the given subject.
func triplesForSubject(t *testing.T, repo *Repository, subject string) []model.Triple {
	t.Helper()
	txn, err := repo.graph.Begin(false)
	require.NoError(t, err)
	defer txn.Discard()
	var out []model.Triple
	require.NoError(t, txn.TriplesForSubject(subject, func(tr model.Triple) error {
		out = append(out, tr)
		return nil
	}))
	return out
}

// getRecord fetches a record in a fresh read scope.
func getRecord(t *testing.T, repo *Repository, uid model.UID) (*model.ResourceRecord, error) {
	t.Helper()
	txn, err := repo.graph.Begin(false)
	require.NoError(t, err)
	defer txn.Discard()
	return txn.GetResource(uid)
}
