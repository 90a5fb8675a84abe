// Package changelog reconciles an upstream changelog against repository tags
// to produce RPM changelog entries.
//
// The upstream convention is one version header line per release, a numeric
// major.minor.patch triple with an optional trailing colon, followed by the
// release's change entries. Reconciliation replaces each header with a dated,
// attributed entry line by resolving the version to a tag and reading the
// tagged commit's metadata. The newest header typically names a version that
// has not been tagged yet; the first unresolved header is therefore treated
// as the in-development head and replaced with a synthetic entry rather than
// dropped.
package changelog
