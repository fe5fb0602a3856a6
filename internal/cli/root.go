// Package cli provides the command-line interface for pgpick.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgpick/pgpick/internal/cli/commands"
	"github.com/pgpick/pgpick/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pgpick",
		Short: "pgpick - browse PostgreSQL query results in your terminal",
		Long: `pgpick runs queries through the psql command-line client and presents
the captured results: interactively through a fuzzy-filterable picker with a
per-row detail view, or as plain table/json/csv/markdown output for scripts.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Help and completion work without configuration.
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := context.WithValue(cmd.Context(), config.ConfigKey(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if used := config.GetConfigFileUsed(); used != "" {
					logger.Debug("using config file", "path", used)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags. Connection flags feed the koanf layer, so
	// precedence over env vars and the config file comes for free.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pgpick.yaml)")
	rootCmd.PersistentFlags().String("host", "", "database host")
	rootCmd.PersistentFlags().String("port", "", "database port")
	rootCmd.PersistentFlags().String("user", "", "database user")
	rootCmd.PersistentFlags().String("password", "", "database password (prefer PG_PASSWORD)")
	rootCmd.PersistentFlags().String("database", "", "database name")
	rootCmd.PersistentFlags().String("psql-path", "", "path to the psql binary")
	rootCmd.PersistentFlags().String("secret-command", "", "command emitting a key=value;... connection string")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (auto|table|json|csv|md)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "json", "csv", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
