package diff

// Config holds the diff engine settings: which tables to compare and how
// to key them. Table lists come from the config file, not the
// environment.
type Config struct {
	// Tables lists the tables to diff, in the order results are reported.
	Tables []TableConfig `mapstructure:"tables"`
}
