// Package diff computes row-level diffs between two relational datasets
// sharing a logical schema.
//
// The package has three layers:
//
//  1. TableDiffer: a pure function classifying one table's rows into
//     inserts, updates and deletes by primary-key correlation, with
//     column-level change detection on top of the row value model.
//  2. Changeset: the aggregated, immutable result of one run: every
//     table's diff plus summary counts and provenance metadata.
//  3. Service: the orchestrator: fetches and diffs all configured tables
//     concurrently (one worker per table, source and target fetched in
//     parallel) and assembles the changeset in configuration order
//     regardless of completion order.
//
// Row access and diffing are behind small interfaces (RowRepository,
// Differ) so concrete database repositories and instrumentation wrappers
// can be swapped in without touching the engine.
package diff
