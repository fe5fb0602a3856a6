package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pgpick/pgpick/internal/psql"
)

// tablesQuery backs the .tables dot-command.
const tablesQuery = `SELECT table_schema, table_name FROM information_schema.tables WHERE table_schema NOT IN ('pg_catalog', 'information_schema') ORDER BY 1, 2`

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive query prompt",
		Long: `Start an interactive prompt that runs each statement through psql.

Statements end with a semicolon and may span multiple lines. History is kept
across sessions. Type .help for the available dot-commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			logger := getLogger(cmd)
			conn, err := connConfig(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return runREPL(cmd, psql.NewExecutor(conn, logger))
		},
	}
}

func runREPL(cmd *cobra.Command, executor *psql.Executor) error {
	cfg := getConfig(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pgpick> ",
		HistoryFile:     historyFile(),
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "pgpick REPL (database: %s)\n", cfg.Database)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("pgpick> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, executor, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until a terminating semicolon.
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt("pgpick> ")

		query := strings.TrimSuffix(buffer.String(), ";")
		buffer.Reset()

		runAndRender(cmd, executor, query)
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// runAndRender executes one statement and prints it plainly. REPL failures
// are reported and the loop continues; nothing aborts the session.
func runAndRender(cmd *cobra.Command, executor *psql.Executor, query string) {
	cfg := getConfig(cmd)
	lines, err := executor.Run(cmd.Context(), query)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	if err := present(cmd, cfg, lines, true); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
}

// handleDotCommand dispatches a dot-command, returning true on quit.
func handleDotCommand(cmd *cobra.Command, executor *psql.Executor, line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(cmd.OutOrStdout())
	case ".tables":
		runAndRender(cmd, executor, tablesQuery)
	case ".clear":
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List tables in the connected database
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// historyFile returns the per-user REPL history path, or empty (history
// disabled) when no cache directory is available.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "pgpick")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("SELECT"),
		readline.PcItem("INSERT"),
		readline.PcItem("UPDATE"),
		readline.PcItem("DELETE"),
		readline.PcItem("EXPLAIN"),
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
