// Package storage provides durable backends for the character store:
// a JSON file (the canonical format), and SQLite or PostgreSQL through
// a shared dialect abstraction.
package storage

import (
	"fmt"

	"github.com/miskatonicsociety/keeperbot/internal/character"
)

// Config selects and configures a backend.
type Config struct {
	// Driver is "json", "sqlite" or "postgres". Empty means "json".
	Driver string `yaml:"driver"`

	// Path is the data file location for the json and sqlite drivers.
	Path string `yaml:"path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DefaultConfig returns a Config using the JSON file backend.
func DefaultConfig() Config {
	return Config{
		Driver: "json",
		Path:   "data/characters.json",
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
	}
}

// Open creates the backend selected by the config.
func Open(cfg Config) (character.Backend, error) {
	switch cfg.Driver {
	case "", "json":
		return NewJSONFile(cfg.Path), nil
	case "sqlite":
		return OpenSQL(NewDialect(DialectSQLite), cfg)
	case "postgres":
		return OpenSQL(NewDialect(DialectPostgres), cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
