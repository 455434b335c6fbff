// Package server serves generated changeset reports over HTTP.
//
// The server is a read-only window onto the output directory: it lists
// changesets produced by earlier diff runs and returns their rendered
// files (json, sql, html). Requests are traced with a ray id and, when an
// API key is configured, authenticated.
//
// # Endpoints
//
//   - GET /health: liveness check, unauthenticated
//   - GET /changesets: list available changesets, newest first
//   - GET /changesets/:id/:format: one rendered changeset file
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key; it is embedded
// by core/config.
package server
