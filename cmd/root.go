package cmd

import (
	"fmt"
	"os"

	"diffly/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "diffly",
	Short: "Compare your SQL data with clarity and style",
	Long: `Diffly compares row data between two relational schemas and emits
the difference as a changeset (JSON, SQL migration script, or HTML report).
With a stored baseline snapshot it also detects three-way conflicts:
cells changed on both sides since the baseline was captured.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// configPath is the directory holding .env and diffly.yaml, shared by all
// subcommands.
var configPath string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory holding .env and diffly.yaml")
}
