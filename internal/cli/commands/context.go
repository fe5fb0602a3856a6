// Package commands implements the pgpick subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pgpick/pgpick/internal/config"
	"github.com/pgpick/pgpick/internal/psql"
	"github.com/pgpick/pgpick/internal/secret"
)

func getConfig(cmd *cobra.Command) *config.Config {
	return config.FromContext(cmd.Context())
}

func getLogger(cmd *cobra.Command) *slog.Logger {
	return config.GetLogger(cmd.Context())
}

// connConfig materializes the connection configuration for one execution.
// With a secret command configured, the secret's values override the static
// config per key and empty secret values fall back to it; either way the
// result is validated before any query subprocess runs.
func connConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (psql.ConnConfig, error) {
	if cfg.SecretCommand == "" {
		return cfg.ConnConfig()
	}

	defaults := psql.ConnConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
		BinPath:  cfg.PsqlPath,
	}
	conn, err := secret.Fetch(ctx, cfg.SecretCommand, defaults, logger)
	if err != nil {
		return psql.ConnConfig{}, err
	}
	if err := config.ValidateConn(conn); err != nil {
		return psql.ConnConfig{}, err
	}
	return conn, nil
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
