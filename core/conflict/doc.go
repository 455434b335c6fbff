// Package conflict implements the three-way merge that enriches a two-way
// changeset with conflict reports.
//
// The merge compares three states of every row the source side touched:
// base (the target at baseline-capture time), source (the desired state
// from the changeset) and current (the target now). A cell conflicts only
// when both sides changed it since the baseline and chose different
// values; a change on one side only is auto-merged silently.
//
// Two cheap exits keep runs fast: a table whose current fingerprint still
// matches the stored baseline fingerprint cannot hold conflicts and is
// skipped without row inspection, and a table with no baseline snapshot is
// treated as clean by policy, since there is nothing to compare against.
package conflict
