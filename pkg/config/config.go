// Package config provides configuration management for occdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
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
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: backend, file, host, port, user, password, database,
//     ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.DedupPolicy, Import.NomenclaturalCode, Import.SkipNameCheck
//   - Sync.Transactional
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use OCCDB_ prefix with underscores for nesting:
//
//	OCCDB_DATABASE_BACKEND=sqlite
//	OCCDB_DATABASE_FILE=occurrences.sqlite
//	OCCDB_LOG_LEVEL=info
//	OCCDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete occdb configuration.
type Config struct {
	// Database contains relational store connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Sync contains settings for table replacement.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for in-memory
	// operations such as scientific-name checking. Store operations are
	// always sequential over a single connection.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains relational store connection parameters.
// The sqlite backend needs only File; the postgres backend uses the
// host/port/user/password/database/ssl_mode group.
type DatabaseConfig struct {
	// Backend selects the store implementation.
	// Valid values: "sqlite", "postgres".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// File is the path of the SQLite database file (sqlite backend).
	File string `mapstructure:"file" yaml:"file"`

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

	// BatchSize defines the number of rows inserted per batch during
	// table replacement. Larger batches are faster but use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings specific to the import command.
type ImportConfig struct {
	// DedupPolicy decides what happens when distinct-by-key meets a
	// duplicated key whose other attributes differ from the first row.
	// "first" keeps the first row and drops the rest silently, matching
	// the behavior of spreadsheet-era pipelines. "strict" fails on
	// conflicting duplicates.
	DedupPolicy string `mapstructure:"dedup_policy" yaml:"dedup_policy"`

	// NomenclaturalCode selects the gnparser code used for
	// scientific-name checking: "botanical" or "zoological".
	NomenclaturalCode string `mapstructure:"nomenclatural_code" yaml:"nomenclatural_code"`

	// SkipNameCheck disables scientific-name parsing during import.
	SkipNameCheck bool `mapstructure:"skip_name_check" yaml:"skip_name_check"`
}

// SyncConfig contains settings for table replacement.
type SyncConfig struct {
	// Transactional switches ReplaceTable from the plain
	// drop-create-insert sequence to a temp-table build followed by an
	// atomic swap. The plain sequence leaves the table absent if the
	// process dies between drop and recreate.
	Transactional bool `mapstructure:"transactional" yaml:"transactional"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Backend:   "sqlite",
			File:      "occdb.sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "occdb",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Import: ImportConfig{
			DedupPolicy:       "first",
			NomenclaturalCode: "botanical",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}
	return res
}
