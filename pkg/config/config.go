// Package config provides configuration management for legisdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode, path
//   - Populate: federal_source, state_dir, fetch_timeout
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Populate.SkipFederal, SkipState, MetricsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use LEGISDB_ prefix with underscores for nesting:
//
//	LEGISDB_DATABASE_HOST=localhost
//	LEGISDB_DATABASE_PORT=5432
//	LEGISDB_LOG_LEVEL=info
//
// Database connection settings are also read from DB_HOST, DB_PORT,
// DB_USER, DB_PASSWORD and DB_NAME.
package config

// Config represents the complete legisdb configuration.
type Config struct {
	// Database contains connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Populate contains settings specific to the populate command.
	Populate PopulateConfig `mapstructure:"populate" yaml:"populate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. Used only by the sqlite driver.
	Path string `mapstructure:"path" yaml:"path"`
}

// PopulateConfig contains settings specific to the populate command.
type PopulateConfig struct {
	// FederalSource is a URL or a local path of the federal roster
	// (legislators-current.json).
	FederalSource string `mapstructure:"federal_source" yaml:"federal_source"`

	// StateDir is the root of per-state legislator files laid out as
	// <state>/legislature/*.yml.
	StateDir string `mapstructure:"state_dir" yaml:"state_dir"`

	// FetchTimeout is the timeout of the federal roster download in seconds.
	FetchTimeout int `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`

	// SkipFederal disables the federal source for one run.
	SkipFederal bool `mapstructure:"skip_federal" yaml:"skip_federal"`

	// SkipState disables the state source for one run.
	SkipState bool `mapstructure:"skip_state" yaml:"skip_state"`

	// MetricsFile is a path for Prometheus textfile output. Empty means
	// no metrics are written.
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// DefaultFederalSource is the congress-legislators roster of current members.
const DefaultFederalSource = "https://unitedstates.github.io/congress-legislators/legislators-current.json"

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "legislators",
			SSLMode:  "disable",
			Path:     "legisdb.sqlite",
		},
		Populate: PopulateConfig{
			FederalSource: DefaultFederalSource,
			StateDir:      "people/data",
			FetchTimeout:  60,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
