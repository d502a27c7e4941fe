package model

import (
	"fmt"
	"path"
	"strings"
)

const (
	// descriptor files in a dump archive
	manifestFile = "manifest.yaml"
	graphFile    = "graph.nt"
	binaryFile   = "content.bin"

	// resourcesDir roots the per-resource tree in a dump archive
	resourcesDir = "resources"

	// CompletionMarkerFile is written as the very last step of a dump.
	// A dump tree without it is not a valid manifest.
	CompletionMarkerFile = ".lakeland-dump-complete"
)

// GetDumpPathToManifest yields the manifest location inside a dump tree.
func GetDumpPathToManifest() string {
	return manifestFile
}

// GetDumpPathToCompletionMarker yields the completion marker location.
func GetDumpPathToCompletionMarker() string {
	return CompletionMarkerFile
}

// GetDumpPathToGraph yields the graph serialization file for a resource,
// as in: resources/{uid}/graph.nt (the root resource maps to
// resources/graph.nt).
func GetDumpPathToGraph(uid UID) string {
	return path.Join(resourcesDir, strings.TrimPrefix(string(uid), "/"), graphFile)
}

// GetDumpPathToBinary yields the binary payload file for a resource,
// as in: resources/{uid}/content.bin.
func GetDumpPathToBinary(uid UID) string {
	return path.Join(resourcesDir, strings.TrimPrefix(string(uid), "/"), binaryFile)
}

// DumpPathComponents defines the unique path parts of a file inside a
// dump archive.
type DumpPathComponents struct {
	UID             UID
	ArchiveFileName string
}

// GetDumpPathComponents yields the resource UID and file name from a
// parsed dump archive path.
func GetDumpPathComponents(archivePath string) (DumpPathComponents, error) {
	cs := strings.Split(archivePath, "/")
	if cs[0] != resourcesDir || len(cs) < 2 {
		return DumpPathComponents{}, fmt.Errorf("invalid dump archive path %q", archivePath)
	}
	name := cs[len(cs)-1]
	if name != graphFile && name != binaryFile {
		return DumpPathComponents{}, fmt.Errorf("invalid dump archive file name %q", archivePath)
	}
	uid := RootUID
	if len(cs) > 2 {
		uid = UID("/" + strings.Join(cs[1:len(cs)-1], "/"))
	}
	return DumpPathComponents{UID: uid, ArchiveFileName: name}, nil
}

// GetBlobPathToPayload yields the content-addressed key of a payload in
// the binary store, as in: {algorithm}/{hex[0:2]}/{hex[2:4]}/{hex}.
// The two-level fanout keeps directory sizes bounded on filesystem
// backends.
func GetBlobPathToPayload(algorithm, digest string) string {
	if len(digest) < 4 {
		return path.Join(algorithm, digest)
	}
	return path.Join(algorithm, digest[0:2], digest[2:4], digest)
}

// BlobPathComponents defines the parts of a content-addressed blob key.
type BlobPathComponents struct {
	Algorithm string
	Digest    string
}

// GetBlobPathComponents yields algorithm and digest from a parsed blob
// store key.
func GetBlobPathComponents(key string) (BlobPathComponents, error) {
	cs := strings.Split(key, "/")
	if len(cs) != 4 {
		return BlobPathComponents{}, fmt.Errorf("invalid blob key %q", key)
	}
	digest := cs[3]
	if len(digest) < 4 || cs[1] != digest[0:2] || cs[2] != digest[2:4] {
		return BlobPathComponents{}, fmt.Errorf("blob key %q does not match its fanout", key)
	}
	return BlobPathComponents{Algorithm: cs[0], Digest: digest}, nil
}
