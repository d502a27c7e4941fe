/*
Package lakeland provides administration tooling for linked-data
repositories: bootstrap, statistics, fixity and referential-integrity
auditing, orphan cleanup, and portable dump/load of resource trees
across the graph and binary stores.

The lakeadm CLI under cmd/lakeadm is the primary entry point; the
pkg/admin facade exposes the same operations programmatically.
*/
package lakeland
