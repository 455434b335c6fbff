// Package database handles database connections and row fetching.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration, plus the concrete row repository behind the diff engine's
// fetch capability.
//
// # Connect
//
// The generic Connect function establishes a connection to the configured
// database. Source and target sides each get their own connection from
// their own Config block.
//
// # Row fetching
//
// Repository implements diff.RowRepository: it selects a table's rows
// ordered by primary key and decodes every column into the canonical
// value model: numbers as float64, booleans as bool, JSON columns as
// nested structures, timestamps and everything else as strings. Excluded
// columns are stripped during decoding, so callers never see them.
//
// # Dialects
//
// Dialect captures the string-level differences between MySQL, PostgreSQL
// and SQLite: identifier quoting, schema prefixes and SQL literal
// rendering. It is pure string manipulation shared with the SQL output
// writer.
package database
