package cli

import (
	"fmt"

	"resumescreen/internal/ai"
	"resumescreen/internal/common"
	"resumescreen/internal/extract"
	"resumescreen/internal/match"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Compute the semantic similarity between a resume and a job description",
	Long: `Compute the semantic similarity between one resume and a job
description. When an AI API key is configured the score blends embedding
similarity with TF-IDF cosine similarity; without a key it falls back to
TF-IDF alone.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, recordFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	var provider ai.Provider
	if cfg.AI.APIKey != "" {
		aiService, err := ai.NewService(&cfg.AI, logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		defer func() {
			if err := aiService.Close(); err != nil {
				logger.LogError(err, "Failed to close AI service")
			}
		}()
		provider = aiService.Provider
	} else {
		logger.Info("No AI API key configured, using TF-IDF similarity only")
	}

	matcher := match.NewMatcher(provider, &cfg.Semantic, logger)

	createInput := func(paths []string) (types.MatchInput, error) {
		if len(paths) != 2 {
			return types.MatchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(paths))
		}
		textA, err := extract.Text(paths[0])
		if err != nil {
			return types.MatchInput{}, err
		}
		textB, err := extract.Text(paths[1])
		if err != nil {
			return types.MatchInput{}, err
		}
		return types.MatchInput{TextA: textA, TextB: textB}, nil
	}

	logDetails := func(input types.MatchInput, cfg common.CommandConfig) {
		logger.Info("Computing similarity",
			"resume_chars", len(input.TextA),
			"job_chars", len(input.TextB),
			"output_format", cfg.OutputFormat)
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matcher.Match,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to compute similarity: %w", err)
	}
	logger.Info("Similarity computed successfully")
	return nil
}
