// Package config provides configuration management for the sqljudge CLI.
package config

// DatabaseConfig holds connection settings for live schema extraction.
type DatabaseConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Name     string            `koanf:"name"`
	User     string            `koanf:"user"`
	Password string            `koanf:"password"`
	Schema   string            `koanf:"schema"`
	Options  map[string]string `koanf:"options"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port int `koanf:"port"`
}

// Config holds all CLI configuration options.
type Config struct {
	SchemaPath   string          `koanf:"schema_path"`
	StatePath    string          `koanf:"state_path"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Concurrency  int             `koanf:"concurrency"`
	Server       ServerConfig    `koanf:"server"`
	Database     *DatabaseConfig `koanf:"database"`
}

// Default configuration values.
const (
	DefaultStateFile   = ".sqljudge/state.db"
	DefaultOutput      = "table"
	DefaultConcurrency = 4
	DefaultServerPort  = 8765
)
