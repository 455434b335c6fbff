package output

// Config holds configuration for changeset output files.
type Config struct {
	// Dir is the directory changeset files are written to. Each run gets
	// its own subdirectory named after the changeset.
	Dir string `mapstructure:"dir" default:"./diffly-output"`
	// Format selects the writers to run (json, sql, html, or all).
	Format string `mapstructure:"format" default:"json"`
}
