package admin

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
)

func TestCleanupRemovesOrphanPayloads(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	live := mustCreateResource(t, repo, "/keep", []byte("live payload"))

	// an orphan payload: content-addressed bytes no record owns
	orphan, err := fixity.NewRecord(repo.algo, "", strings.NewReader("orphan bytes"))
	require.NoError(t, err)
	orphanKey := model.GetBlobPathToPayload(orphan.Algorithm, orphan.Digest)
	require.NoError(t, repo.blobs.Put(ctx, orphanKey, strings.NewReader("orphan bytes")))

	res, err := repo.Cleanup(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.BinariesRemoved)
	require.Zero(t, res.GraphNodesRemoved)

	has, err := repo.blobs.Has(ctx, orphanKey)
	require.NoError(t, err)
	require.False(t, has)

	liveKey := model.GetBlobPathToPayload(live.Binary.Algorithm, live.Binary.Digest)
	has, err = repo.blobs.Has(ctx, liveKey)
	require.NoError(t, err)
	require.True(t, has)
}

func TestCleanupRemovesOrphanAuxNodes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	// a live resource with an auxiliary node: must survive
	liveAux := repo.ns.URIFor("/live") + "#acl"
	mustCreateResource(t, repo, "/live", nil,
		model.Triple{
			Subject:   liveAux,
			Predicate: model.PredType,
			Object:    model.IRI(model.OntologyNamespace + "ACL"),
		},
	)

	// a resource whose record vanished, leaving its aux node orphaned
	doomedAux := repo.ns.URIFor("/gone") + "#acl"
	mustCreateResource(t, repo, "/gone", nil,
		model.Triple{
			Subject:   doomedAux,
			Predicate: model.PredType,
			Object:    model.IRI(model.OntologyNamespace + "ACL"),
		},
		model.Triple{
			Subject:   doomedAux,
			Predicate: model.DCTermsNamespace + "creator",
			Object:    model.Literal("someone"),
		},
	)
	mustDeleteRecordOnly(t, repo, "/gone")

	res, err := repo.Cleanup(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.GraphNodesRemoved)

	require.Empty(t, triplesForSubject(t, repo, doomedAux))
	require.Len(t, triplesForSubject(t, repo, liveAux), 1)
}

func TestCleanupSparesDanglingReferenceTargets(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	// /target is merely referenced by someone else's dangling statement;
	// presence of its record keeps it and its payload alive
	target := mustCreateResource(t, repo, "/target", []byte("bytes"))
	mustCreateResource(t, repo, "/referrer", nil,
		model.Triple{
			Subject:   repo.ns.URIFor("/referrer"),
			Predicate: model.PredContains,
			Object:    model.IRI(repo.ns.URIFor("/ghost")),
		},
	)

	res, err := repo.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, res.BinariesRemoved)
	require.Zero(t, res.GraphNodesRemoved)

	key := model.GetBlobPathToPayload(target.Binary.Algorithm, target.Binary.Digest)
	has, err := repo.blobs.Has(ctx, key)
	require.NoError(t, err)
	require.True(t, has)
}

func TestCleanupIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	orphan, err := fixity.NewRecord(repo.algo, "", strings.NewReader("orphan"))
	require.NoError(t, err)
	require.NoError(t, repo.blobs.Put(ctx,
		model.GetBlobPathToPayload(orphan.Algorithm, orphan.Digest),
		strings.NewReader("orphan")))

	first, err := repo.Cleanup(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, first.BinariesRemoved)

	second, err := repo.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, second.BinariesRemoved)
	require.Zero(t, second.GraphNodesRemoved)
}
