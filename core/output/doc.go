// Package output renders changesets for consumption: JSON for machines,
// SQL migration scripts for applying to the target, HTML reports for
// review, and colored terminal summaries for the CLI.
//
// File writers share the Writer interface; the terminal summaries are
// plain functions over an io.Writer.
package output
