// Package model contains the types shared across the repository:
// resource identifiers and records, RDF triples and terms, digest
// records, dump manifest descriptors and the path conventions used
// by the dump archive layout and the blob store.
package model
