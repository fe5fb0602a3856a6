package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgpick/pgpick/internal/config"
	"github.com/pgpick/pgpick/internal/result"
	"github.com/pgpick/pgpick/internal/tui"
)

// runUI is swapped out in tests; the real one blocks inside bubbletea.
var runUI = tui.Run

// present renders captured result lines. Empty captures emit a single
// notification and open no UI. With output "auto" on a terminal the
// interactive picker runs; every other combination renders plainly.
func present(cmd *cobra.Command, cfg *config.Config, lines []string, forcePlain bool) error {
	if len(lines) == 0 {
		notifyNoResults(cmd.OutOrStdout())
		return nil
	}

	set := result.Parse(lines)

	if !forcePlain && cfg.Output == "auto" && stdoutIsTerminal(cmd) {
		return runUI(set)
	}
	return renderSet(cmd.OutOrStdout(), set, cfg.Output)
}

func notifyNoResults(w io.Writer) {
	_, _ = fmt.Fprintln(w, "no results returned")
}

// stdoutIsTerminal checks the command's real stdout. Commands under test
// write to buffers, which correctly routes them to plain rendering.
func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}
