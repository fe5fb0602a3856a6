package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "pgpick %s\n", version)
			_, _ = fmt.Fprintf(out, "  build date: %s\n", buildDate)
			_, _ = fmt.Fprintf(out, "  commit:     %s\n", gitCommit)
		},
	}
}
