// Package monitor provides run-scoped performance telemetry for diff runs.
//
// A Report accumulates one timing record per fetch or diff operation. It
// is shared by all concurrent table workers of a single run, guarded by a
// mutex so concurrent appends never lose updates, and discarded when the
// run ends; there is no process-wide singleton.
//
// Instrumentation is explicit composition, not inheritance: Repository and
// Differ wrap the real implementations behind the same interfaces, measure,
// record, and forward. The diff and conflict algorithms never read the
// report; it is purely an observability side-channel.
package monitor
