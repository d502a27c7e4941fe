// Package status exports errors produced by the administration layer.
package status

import (
	"github.com/lakeland-data/lakeland/pkg/errors"
)

var (
	// ErrNotConfirmed signals that a destructive operation was invoked
	// without the caller's explicit confirmation. It is a refusal, not
	// a fault: nothing was touched.
	ErrNotConfirmed = errors.New("destructive operation was not confirmed")

	// ErrResourceNotFound indicates a UID with no resource record.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrNoBinaryPayload indicates a resource that exists but owns no
	// binary payload where one was expected. Matches ErrResourceNotFound
	// under errors.Is.
	ErrNoBinaryPayload = errors.New("resource has no binary payload").Wrap(ErrResourceNotFound)

	// ErrDigestMismatch indicates stored bytes no longer matching their
	// digest record.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrPartialBootstrap indicates a bootstrap that succeeded on the
	// graph store but failed on the binary store. The repository is in
	// a documented inconsistent state and requires manual remediation;
	// it is never retried automatically.
	ErrPartialBootstrap = errors.New("partial bootstrap failure: graph store reinitialized, binary store failed")

	// ErrCorruptManifest indicates a dump tree that is structurally
	// malformed, incomplete, or whose declared digests do not match the
	// bytes on disk.
	ErrCorruptManifest = errors.New("corrupt dump manifest")

	// ErrInterrupted signals a long-running scan cancelled by the caller.
	ErrInterrupted = errors.New("operation interrupted")
)
