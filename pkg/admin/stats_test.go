package admin

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestStatsCountsResourcesAndPayloads(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	mustCreateResource(t, repo, "/docs", nil)
	mustCreateResource(t, repo, "/docs/report", []byte("twelve bytes"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.ResourceCount)
	require.EqualValues(t, 1, stats.BinaryCount)
	require.EqualValues(t, 12, stats.TotalBinarySizeBytes)

	// 4 descriptive triples per resource, plus the payload type
	require.EqualValues(t, 9, stats.GraphTripleCount)
}

func TestStatsDeduplicatesSharedPayloads(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())

	// same bytes, two resources: content addressing stores one payload
	mustCreateResource(t, repo, "/a", []byte("shared"))
	mustCreateResource(t, repo, "/b", []byte("shared"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.ResourceCount)
	require.EqualValues(t, 1, stats.BinaryCount)
	require.EqualValues(t, 6, stats.TotalBinarySizeBytes)
}

func TestStatsStoreSize(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, afero.NewMemMapFs())
	mustCreateResource(t, repo, "/a", []byte("payload"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, stats.StoreSizeBytes, stats.TotalBinarySizeBytes)
}
