// Package secret populates connection parameters from an external
// secret-retrieval command whose output is a key=value connection string.
package secret

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/pgpick/pgpick/internal/psql"
)

// Fetch runs the given command, reads the first line of its stdout, and
// parses it as a connection string. The command is split on whitespace; the
// first field is the binary, the rest are arguments. Values missing from the
// secret keep their defaults.
func Fetch(ctx context.Context, command string, defaults psql.ConnConfig, logger *slog.Logger) (psql.ConnConfig, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return defaults, fmt.Errorf("empty secret command")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("retrieving connection secret", "command", fields[0])

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return defaults, fmt.Errorf("secret command failed: %s: %w", msg, err)
		}
		return defaults, fmt.Errorf("secret command failed: %w", err)
	}

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return ParseConnString(line, defaults), nil
}

// ParseConnString parses a "key=value;key=value;..." connection string into
// a connection config. Keys are case-folded to lowercase; recognized keys
// are host, port, user, password and dbname. An empty or absent value falls
// back to the corresponding default.
func ParseConnString(s string, defaults psql.ConnConfig) psql.ConnConfig {
	cfg := defaults
	for _, pair := range strings.Split(s, ";") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "host":
			cfg.Host = value
		case "port":
			cfg.Port = value
		case "user":
			cfg.User = value
		case "password":
			cfg.Password = value
		case "dbname":
			cfg.Database = value
		}
	}
	return cfg
}
