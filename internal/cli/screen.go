package cli

import (
	"context"
	"fmt"
	"time"

	"resumescreen/internal/ai"
	"resumescreen/internal/common"
	"resumescreen/internal/match"
	"resumescreen/internal/observability"
	"resumescreen/internal/parser"
	"resumescreen/internal/pipeline"
	"resumescreen/internal/scoring"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [resume-dir] [job-description-file]",
	Short: "Screen a directory of resumes against a job description",
	Long: `Screen every resume in a directory against a job description and
print a ranked shortlist. The job description can be a structured JSON
file or plain text; resumes may be PDF, DOCX, plain text, or markdown.

With --watch the command keeps running and re-screens whenever resume
files in the directory change.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if err := common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats); err != nil {
			return err
		}
		if screenMode != "" {
			switch types.ScreenMode(screenMode) {
			case types.ModeRuleOnly, types.ModeSemanticOnly, types.ModeCombined:
			default:
				return fmt.Errorf("invalid scoring mode '%s' (valid: %v)", screenMode, types.ValidModes())
			}
		}
		switch screenParser {
		case "rule", "llm":
			return nil
		default:
			return fmt.Errorf("invalid parser '%s' (valid: rule, llm)", screenParser)
		}
	},
	RunE: runScreen,
}

var (
	screenConfig   common.CommandConfig
	screenCSVFile  string
	screenMode     string
	screenTopN     int
	screenParser   string
	screenWatch    bool
	screenDebounce time.Duration
)

func init() {
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	screenCmd.Flags().StringVar(&screenConfig.OutputFormat, "format", "", "Output format: json, text, markdown, or csv")
	screenCmd.Flags().StringVar(&screenCSVFile, "csv", "", "Also write the top candidates as CSV to this file")
	screenCmd.Flags().StringVar(&screenMode, "mode", "", "Scoring mode: rule, semantic, or combined (default: configured mode)")
	screenCmd.Flags().IntVar(&screenTopN, "top-n", 0, "Number of top candidates to show (default: configured topN)")
	screenCmd.Flags().StringVar(&screenParser, "parser", "rule", "Resume parser: rule or llm")
	screenCmd.Flags().BoolVar(&screenWatch, "watch", false, "Watch the resume directory and re-screen on changes")
	screenCmd.Flags().DurationVar(&screenDebounce, "debounce", time.Second, "Delay before re-screening after a file change in watch mode")

	// Add completion for format flag
	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resumeDir, jobFile := args[0], args[1]

	// Flag overrides for this run
	if screenMode != "" {
		cfg.Scoring.Mode = screenMode
	}
	if screenTopN > 0 {
		cfg.Scoring.TopN = screenTopN
	}

	if err := cfg.ValidateAIKey(screenParser); err != nil {
		return err
	}

	om, err := observability.NewObservabilityManager(observability.GetObservabilityConfig(cfg, Version), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Observability shutdown failed")
		}
	}()

	var provider ai.Provider
	if cfg.RequiresAI(screenParser) {
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
	}

	var matcher *match.Matcher
	if cfg.Scoring.Mode != "rule" {
		matcher = match.NewMatcher(provider, &cfg.Semantic, logger)
	}

	resumeParser, err := parser.New(screenParser, provider, logger)
	if err != nil {
		return err
	}

	scorer := scoring.NewScorer(&cfg.Scoring, matcher, logger)
	pipe := pipeline.New(cfg, resumeParser, scorer, om.GetMetrics(), logger)
	outputHandler := common.NewOutputHandler(logger)

	writeResult := func(result types.ScreenResult) error {
		trimmed := pipeline.TopN(result, cfg.Scoring.TopN)
		if err := outputHandler.HandleOutput(trimmed, screenConfig); err != nil {
			return err
		}
		if screenCSVFile != "" {
			csvConfig := common.CommandConfig{OutputFile: screenCSVFile, OutputFormat: "csv"}
			if err := outputHandler.HandleOutput(trimmed, csvConfig); err != nil {
				return err
			}
		}
		return nil
	}

	if screenWatch {
		emit := func(result types.ScreenResult) {
			if err := writeResult(result); err != nil {
				logger.LogError(err, "Failed to write screening result")
			}
		}
		watcher := pipeline.NewDirWatcher(pipe, resumeDir, jobFile, screenDebounce, emit, logger)
		return watcher.Start(cmd.Context())
	}

	result, err := pipe.Run(cmd.Context(), resumeDir, jobFile)
	if err != nil {
		return fmt.Errorf("failed to screen resumes: %w", err)
	}

	if err := writeResult(result); err != nil {
		return err
	}

	logger.Info("Screening completed successfully",
		"total", result.Total,
		"scored", result.Scored,
		"failed", result.Failed)
	return nil
}
