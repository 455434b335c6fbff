package database

// Config holds the connection settings for one database side (source or
// target).
type Config struct {
	// Driver names the SQL dialect used when rendering output (mysql,
	// postgres, sqlite). Live connections support mysql only; Connect
	// rejects anything else.
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:""`
	// Schema is the logical schema the diff runs against.
	Schema string `mapstructure:"schema" default:""`
	// TimeoutSeconds bounds connection setup and per-query I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
