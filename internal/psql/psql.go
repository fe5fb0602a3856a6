// Package psql runs queries through the psql command-line client and captures
// its unaligned output. No driver is involved: the binary is the interface.
package psql

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// DefaultBin is the client binary used when no path override is configured.
const DefaultBin = "psql"

// ConnConfig carries everything needed for one invocation. It is built fresh
// per execution by the config layer and never mutated here.
type ConnConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	BinPath  string
}

// Bin returns the configured client binary, falling back to DefaultBin.
func (c ConnConfig) Bin() string {
	if c.BinPath != "" {
		return c.BinPath
	}
	return DefaultBin
}

// Args builds the argument list for one query. The password is deliberately
// absent: it travels via the child's environment so it never shows up in the
// process list.
func (c ConnConfig) Args(query string) []string {
	return []string{
		"-h", c.Host,
		"-p", c.Port,
		"-U", c.User,
		"-d", c.Database,
		"-c", query,
		"-A",
		"--pset=footer=off",
	}
}

// ExecError reports a non-zero client exit, carrying whatever the client
// wrote to stderr.
type ExecError struct {
	Stderr   string
	ExitCode int
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("psql exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("psql exited with code %d: %s", e.ExitCode, e.Stderr)
}

// Executor runs queries synchronously against one connection configuration.
type Executor struct {
	cfg    ConnConfig
	logger *slog.Logger
}

// NewExecutor creates an executor for the given connection configuration.
func NewExecutor(cfg ConnConfig, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{cfg: cfg, logger: logger}
}

// Run executes one query and returns stdout split into lines, in order.
// A zero-line output is a valid result, not an error. The call blocks until
// the client exits; cancelling the context kills the child.
func (e *Executor) Run(ctx context.Context, query string) ([]string, error) {
	cmd := exec.CommandContext(ctx, e.cfg.Bin(), e.cfg.Args(query)...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+e.cfg.Password)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("running query",
		"bin", e.cfg.Bin(),
		"host", e.cfg.Host,
		"database", e.cfg.Database,
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecError{
				Stderr:   joinStderr(stderr.String()),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return nil, fmt.Errorf("failed to start %s: %w", e.cfg.Bin(), err)
	}

	return SplitLines(stdout.String()), nil
}

// joinStderr normalizes captured stderr to newline-joined trimmed lines.
func joinStderr(s string) string {
	lines := SplitLines(s)
	return strings.Join(lines, "\n")
}

// SplitLines splits captured output into lines, dropping the single trailing
// empty line the final newline produces. Empty output yields no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
