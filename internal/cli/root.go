package cli

import (
	"context"

	"resumescreen/internal/config"
	"resumescreen/internal/errors"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

// recordFormats is the format set for commands that emit a single
// record rather than a tabular screening report.
var recordFormats = []string{"json", "text"}

var rootCmd = &cobra.Command{
	Use:   "resumescreen",
	Short: "A CLI tool for screening resumes against a job description",
	Long: `Resumescreen parses a directory of resumes, scores each candidate
against a job description, and prints a ranked shortlist. Scoring can be
rule-based, semantic (embedding similarity), or a combination of both.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

func init() {
	rootCmd.AddCommand(screenCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(versionCmd)
}
