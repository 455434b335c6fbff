package snapshot

// Config holds configuration for baseline snapshot storage.
type Config struct {
	// Store selects the backend: "file" for the local directory store,
	// "object" for the S3-compatible bucket store.
	Store string `mapstructure:"store" default:"file"`
	// Dir is the local directory for the file store.
	Dir string `mapstructure:"dir" default:"./snapshots"`
	// Name is the snapshot name used when none is given on the command
	// line.
	Name string `mapstructure:"name" default:"baseline"`
}
