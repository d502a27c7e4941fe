package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpPaths(t *testing.T) {
	require.Equal(t, "resources/a/b/graph.nt", GetDumpPathToGraph(UID("/a/b")))
	require.Equal(t, "resources/a/b/content.bin", GetDumpPathToBinary(UID("/a/b")))
	require.Equal(t, "resources/graph.nt", GetDumpPathToGraph(RootUID))
	require.Equal(t, "manifest.yaml", GetDumpPathToManifest())
	require.Equal(t, ".lakeland-dump-complete", GetDumpPathToCompletionMarker())
}

func TestGetDumpPathComponents(t *testing.T) {
	c, err := GetDumpPathComponents("resources/a/b/graph.nt")
	require.NoError(t, err)
	require.Equal(t, UID("/a/b"), c.UID)
	require.Equal(t, "graph.nt", c.ArchiveFileName)

	c, err = GetDumpPathComponents("resources/a/content.bin")
	require.NoError(t, err)
	require.Equal(t, UID("/a"), c.UID)
	require.Equal(t, "content.bin", c.ArchiveFileName)

	c, err = GetDumpPathComponents("resources/graph.nt")
	require.NoError(t, err)
	require.Equal(t, RootUID, c.UID)

	_, err = GetDumpPathComponents("manifest.yaml")
	require.Error(t, err)
	_, err = GetDumpPathComponents("resources/a/b/other.txt")
	require.Error(t, err)
}

func TestBlobPaths(t *testing.T) {
	key := GetBlobPathToPayload("blake2b-512", "deadbeef01")
	require.Equal(t, "blake2b-512/de/ad/deadbeef01", key)

	c, err := GetBlobPathComponents(key)
	require.NoError(t, err)
	require.Equal(t, "blake2b-512", c.Algorithm)
	require.Equal(t, "deadbeef01", c.Digest)

	_, err = GetBlobPathComponents("blake2b-512/deadbeef01")
	require.Error(t, err)
	_, err = GetBlobPathComponents("blake2b-512/xx/yy/deadbeef01")
	require.Error(t, err)
}
