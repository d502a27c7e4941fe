// Package fixity computes and compares content digests for binary
// payloads. The digest recorded at write time names its algorithm so
// verification always recomputes with the original algorithm, whatever
// the store default is at check time.
package fixity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/model"
)

const (
	// AlgoBlake2b is the default digest algorithm.
	AlgoBlake2b = "blake2b-512"

	// AlgoSHA256 is accepted for interoperability with repositories
	// that record SHA-256 digests.
	AlgoSHA256 = "sha-256"
)

// ErrUnknownAlgorithm indicates a digest record naming an algorithm
// this implementation cannot recompute.
var ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

// NewHasher returns a hash for the named algorithm.
func NewHasher(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case AlgoBlake2b:
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, err
		}
		return h, nil
	case AlgoSHA256:
		return sha256.New(), nil
	default:
		return nil, ErrUnknownAlgorithm.Wrap(fmt.Errorf("algorithm %q", algorithm))
	}
}

// Digest consumes the reader and returns the hex digest and byte count.
func Digest(algorithm string, r io.Reader) (string, uint64, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(h, r)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), uint64(n), nil
}

// NewRecord consumes the reader and builds the digest record stored
// alongside the payload.
func NewRecord(algorithm, mediaType string, r io.Reader) (model.DigestRecord, error) {
	digest, size, err := Digest(algorithm, r)
	if err != nil {
		return model.DigestRecord{}, err
	}
	return model.DigestRecord{
		Algorithm: algorithm,
		Digest:    digest,
		Size:      size,
		MediaType: mediaType,
	}, nil
}

// Verify recomputes the digest of r with the record's algorithm and
// reports whether it matches, returning the recomputed value either way.
func Verify(rec model.DigestRecord, r io.Reader) (bool, string, error) {
	actual, _, err := Digest(rec.Algorithm, r)
	if err != nil {
		return false, "", err
	}
	return actual == rec.Digest, actual, nil
}
