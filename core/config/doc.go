// Package config provides configuration management for diffly.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional diffly.yaml config file, and a .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Source / Target: connection details for the two database sides
//   - Diff: the table list with primary keys and excluded columns
//   - Output: changeset output directory and default format
//   - Snapshot: baseline snapshot store selection
//   - Server: report HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Scalar settings follow the SECTION_KEY environment convention
// (e.g. SOURCE_HOST, LOG_LEVEL); the table list is file-only.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Source.Host)
package config
