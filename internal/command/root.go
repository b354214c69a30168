// Package command contains the CLI command constructors.
package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendtrack/internal/config"
	"github.com/mmynk/spendtrack/pkg/logging"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	var envFiles []string
	cmd := &cobra.Command{
		Use:          "spendtrack [command] [flags]",
		Short:        "Personal expense tracker server",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := logging.Setup(cfg.LogLevel)
			logger.DebugContext(cmd.Context(), "configuration loaded",
				slog.String("env", cfg.Env),
				slog.String("address", cfg.Address),
				slog.String("db_path", cfg.DBPath),
			)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVarP(
		&envFiles,
		"env-file", "e",
		config.DefaultEnvFiles(),
		"optional dotenv files; earlier files take precedence",
	)

	cmd.AddCommand(
		serveCommand(),
		seedCommand(),
		userCommand(),
	)

	return cmd
}
