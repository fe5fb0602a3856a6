package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pgpick/pgpick/internal/psql"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Input string
	Watch bool
	NoUI  bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [SQL]",
		Short: "Run a query through psql and browse the results",
		Long: `Run a query through the psql client and present the captured results.

The query comes from the argument, a file (--input), or piped stdin. On a
terminal with no query given, run drops into the interactive REPL.`,
		Example: `  # Run SQL directly
  pgpick run "SELECT * FROM users"

  # Run a query file
  pgpick run -i report.sql

  # Re-run the file on every save
  pgpick run -i report.sql --watch

  # Pipe a query in, get JSON out
  echo "SELECT * FROM users" | pgpick run -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "read SQL from file")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-run the --input file on change")
	cmd.Flags().BoolVar(&opts.NoUI, "no-ui", false, "always render plainly, never open the picker")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	conn, err := connConfig(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	executor := psql.NewExecutor(conn, logger)

	if opts.Watch {
		if opts.Input == "" {
			return fmt.Errorf("--watch requires --input")
		}
		return watchAndRun(cmd, executor, opts.Input)
	}

	query, ok, err := readQuery(cmd, args, opts.Input)
	if err != nil {
		return err
	}
	if !ok {
		// TTY and nothing to run: hand over to the REPL.
		return runREPL(cmd, executor)
	}

	lines, err := executor.Run(cmd.Context(), query)
	if err != nil {
		return err
	}
	return present(cmd, cfg, lines, opts.NoUI)
}

// readQuery resolves the query text from argument, file, or piped stdin.
// ok is false when no source is available and stdin is a terminal.
func readQuery(cmd *cobra.Command, args []string, input string) (query string, ok bool, err error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), true, nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", false, fmt.Errorf("failed to read query file: %w", err)
		}
		return string(content), true, nil
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), true, nil
	default:
		return "", false, nil
	}
}

// watchAndRun executes the query file once, then again on every write.
// Output is always plain: an interactive picker makes no sense in a loop
// that the next save would have to interrupt.
func watchAndRun(cmd *cobra.Command, executor *psql.Executor, path string) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directory, not the file: editors save by
	// writing a temp file and renaming it over the target, which swaps
	// the inode out from under a file-level watch. Directory events keep
	// firing across renames; we filter them down to the target path.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	runOnce := func() {
		content, err := os.ReadFile(path)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		lines, err := executor.Run(cmd.Context(), string(content))
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		if err := present(cmd, cfg, lines, true); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	logger.Info("watching query file", "path", path)
	runOnce()

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, open := <-watcher.Events:
			if !open {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("query file changed", "op", event.Op.String())
				runOnce()
			}
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			return fmt.Errorf("watch failed: %w", err)
		}
	}
}
