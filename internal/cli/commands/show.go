package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgpick/pgpick/internal/psql"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	NoUI bool
}

// NewShowCommand creates the show command, which presents previously
// captured psql output without running anything.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Present previously captured psql output",
		Long: `Present a result capture without executing a query.

The input must be psql unaligned (-A) output with the footer suppressed:
a pipe-delimited header line followed by pipe-delimited data rows. It is
read from FILE or from piped stdin.`,
		Example: `  psql -A --pset=footer=off -c "SELECT * FROM users" > out.txt
  pgpick show out.txt

  pgpick show out.txt -o md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoUI, "no-ui", false, "always render plainly, never open the picker")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *ShowOptions) error {
	var raw []byte
	var err error

	switch {
	case len(args) == 1:
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read capture: %w", err)
		}
	case !isTerminal(os.Stdin):
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	default:
		return fmt.Errorf("no capture given: pass a file or pipe psql output in")
	}

	return present(cmd, getConfig(cmd), psql.SplitLines(string(raw)), opts.NoUI)
}
