// Package snapshot captures and restores baseline snapshots of the target
// database.
//
// A snapshot is taken at clone time: every configured table's rows plus a
// per-table content fingerprint, bundled into an Archive. The archive is
// plain data (a table→rows mapping and a table→fingerprint mapping) and
// round-trips through JSON unchanged, so callers may persist it wherever
// they like. Two stores ship here: a local file store and an
// S3-compatible object store built on core/storage.
//
// At diff time the archive is loaded back and handed to the conflict
// service as the base of the three-way merge; the fingerprints drive its
// fast path. The engine only ever reads snapshots, it never writes them.
package snapshot
