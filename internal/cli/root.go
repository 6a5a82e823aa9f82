// Package cli is the tong777 command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fadedpez/tong777/internal/config"
	"github.com/fadedpez/tong777/internal/console"
	"github.com/fadedpez/tong777/internal/logging"
)

// env is what every subcommand needs once the root has run
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	e := &env{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "tong777",
		Short: "A terminal casino",
		Long: `tong777 is a terminal casino with High-Low, Coin Flip, Blackjack and Slots.

Configuration comes from the environment or a .env file in the working
directory; see STORAGE_TYPE, DATA_DIR and friends.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}

			e.cfg = cfg
			e.logger = logging.NewWithWriter(level, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env: LOG_LEVEL)")

	rootCmd.AddCommand(newPlayCmd(e))
	rootCmd.AddCommand(newStatsCmd(e))
	rootCmd.AddCommand(newMigrateCmd(e))

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), console.FormatError(err))
		os.Exit(1)
	}
}
