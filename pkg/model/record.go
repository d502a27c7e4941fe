package model

import "time"

// DigestRecord is the checksum recorded alongside a binary payload at
// write time. Digest values are lowercase hex.
type DigestRecord struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Digest    string `json:"digest" yaml:"digest"`
	Size      uint64 `json:"size" yaml:"size"`
	MediaType string `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
}

// ResourceRecord is the administrative record of one resource. The full
// RDF description lives in the graph; the record carries what the
// administration layer needs without triple scans.
type ResourceRecord struct {
	UID      UID           `json:"uid" yaml:"uid"`
	Created  time.Time     `json:"created" yaml:"created"`
	Modified time.Time     `json:"modified" yaml:"modified"`
	Types    []string      `json:"types,omitempty" yaml:"types,omitempty"`
	Binary   *DigestRecord `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// HasBinary tells whether the resource owns a binary payload.
func (r *ResourceRecord) HasBinary() bool {
	return r.Binary != nil
}
