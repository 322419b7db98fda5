package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/tidytable/internal/config"
	"github.com/couchcryptid/tidytable/internal/observability"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "tidytable",
	Short:         "Reshape messy tabular data into tidy long-format tables",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			return err
		}
		cfg = c
		logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd, validateCmd, fixturesCmd)
}
