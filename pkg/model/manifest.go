package model

import (
	"fmt"
	"time"
)

// CurrentManifestVersion is the dump manifest format version produced
// by this implementation.
const CurrentManifestVersion = 1

// BinaryMode selects how binary payloads are treated by dump.
type BinaryMode string

const (
	// BinaryModeInclude copies full payload bytes into the dump tree.
	BinaryModeInclude BinaryMode = "include"

	// BinaryModeTruncate writes zero-byte placeholders preserving the
	// directory structure and file names.
	BinaryModeTruncate BinaryMode = "truncate"

	// BinaryModeSkip omits binary entries and their directories.
	BinaryModeSkip BinaryMode = "skip"
)

// Validate checks that the mode is one of the known values.
func (m BinaryMode) Validate() error {
	switch m {
	case BinaryModeInclude, BinaryModeTruncate, BinaryModeSkip:
		return nil
	default:
		return fmt.Errorf("invalid binary mode %q", string(m))
	}
}

// ManifestEntry describes one dumped resource. Entries are
// self-sufficient: a load needs only the manifest tree, never the
// source repository.
type ManifestEntry struct {
	UID        UID           `json:"uid" yaml:"uid"`
	GraphPath  string        `json:"graphPath" yaml:"graphPath"`
	BinaryMode BinaryMode    `json:"binaryMode" yaml:"binaryMode"`
	BinaryPath string        `json:"binaryPath,omitempty" yaml:"binaryPath,omitempty"`
	Digest     *DigestRecord `json:"digest,omitempty" yaml:"digest,omitempty"`
	_          struct{}
}

// ManifestDescriptor indexes a complete dump archive.
type ManifestDescriptor struct {
	Version    uint64          `json:"version" yaml:"version"`
	ID         string          `json:"id" yaml:"id"`
	SourceRoot UID             `json:"sourceRoot" yaml:"sourceRoot"`
	Namespace  string          `json:"namespace" yaml:"namespace"`
	BinaryMode BinaryMode      `json:"binaryMode" yaml:"binaryMode"`
	CreatedAt  time.Time       `json:"createdAt" yaml:"createdAt"`
	Entries    []ManifestEntry `json:"entries" yaml:"entries"`
	_          struct{}
}

// Validate checks structural soundness of a manifest.
func (m *ManifestDescriptor) Validate() error {
	if m.Version == 0 || m.Version > CurrentManifestVersion {
		return fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	if err := m.BinaryMode.Validate(); err != nil {
		return err
	}
	if m.Namespace == "" {
		return fmt.Errorf("manifest has no source namespace")
	}
	if err := m.SourceRoot.Validate(); err != nil {
		return fmt.Errorf("manifest source root: %w", err)
	}
	for i, e := range m.Entries {
		if err := e.UID.Validate(); err != nil {
			return fmt.Errorf("manifest entry %d: %w", i, err)
		}
		if e.GraphPath == "" {
			return fmt.Errorf("manifest entry %d (%s) has no graph path", i, e.UID)
		}
		if e.BinaryMode == BinaryModeInclude && e.BinaryPath != "" && e.Digest == nil {
			return fmt.Errorf("manifest entry %d (%s) has a payload but no digest", i, e.UID)
		}
	}
	return nil
}
