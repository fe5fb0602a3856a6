// Package config loads pgpick configuration from defaults, an optional
// pgpick.yaml, PG_* environment variables, and CLI flags, in ascending
// precedence.
package config

import (
	"fmt"

	"github.com/pgpick/pgpick/internal/psql"
)

// Config holds all resolved CLI configuration.
type Config struct {
	Host          string `koanf:"host"`
	Port          string `koanf:"port"`
	User          string `koanf:"user"`
	Password      string `koanf:"password"`
	Database      string `koanf:"database"`
	PsqlPath      string `koanf:"psql_path"`
	SecretCommand string `koanf:"secret_command"`
	Output        string `koanf:"output"`
	Verbose       bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultPsqlPath = psql.DefaultBin
	DefaultOutput   = "auto" // TTY: interactive picker; otherwise: table
)

// MissingParamError is a fatal configuration error: a required connection
// parameter is absent. It is raised before any subprocess is spawned.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required connection parameter: %s", e.Param)
}

// ValidateConn checks that every required connection parameter is present,
// reporting the first missing one by name. The binary path is optional.
func ValidateConn(conn psql.ConnConfig) error {
	required := []struct {
		name  string
		value string
	}{
		{"host", conn.Host},
		{"port", conn.Port},
		{"user", conn.User},
		{"password", conn.Password},
		{"database", conn.Database},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingParamError{Param: r.name}
		}
	}
	return nil
}

// ConnConfig materializes the connection configuration the executor consumes.
// Every field except the binary path is required; the first missing one is
// reported by name.
func (c *Config) ConnConfig() (psql.ConnConfig, error) {
	conn := psql.ConnConfig{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Database: c.Database,
		BinPath:  c.PsqlPath,
	}
	if err := ValidateConn(conn); err != nil {
		return psql.ConnConfig{}, err
	}
	return conn, nil
}
