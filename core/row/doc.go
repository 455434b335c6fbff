// Package row defines the canonical value model for one database row.
//
// A row is a mapping from column name to a dynamically-typed value: nil,
// bool, number, string, ordered list, or nested object: the shape produced
// by decoding a database row or unmarshalling JSON. The package defines,
// once, the three operations every other package relies on:
//
//   - Equal: deep structural equality with canonical object-key ordering and
//     a small absolute tolerance for numeric values, absorbing float
//     round-trip noise from storage and transport.
//   - Hash: a cheap order-insensitive structural hash that agrees with Equal
//     (equal values hash equal). Used only as a fast pre-check before the
//     exact comparison, never as a substitute for it.
//   - PKKey: a deterministic string derived from a row's primary-key column
//     values, used to correlate rows across source, target and baseline.
//
// Centralising these here keeps comparison semantics identical everywhere
// equality or hashing is needed, instead of ad hoc per-call comparisons.
package row
