package cli

import (
	"context"
	"fmt"

	"resumescreen/internal/ai"
	"resumescreen/internal/common"
	"resumescreen/internal/extract"
	"resumescreen/internal/parser"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse a single resume into a structured candidate record",
	Long: `Parse one resume file into a structured candidate record without
scoring it. Useful for inspecting what the screening pipeline extracts
from a resume. Supports PDF, DOCX, plain text, and markdown files.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Single-record output has no tabular form, so csv and
		// markdown are not offered here.
		if err := common.ValidateOutputFormat(parseConfig.OutputFormat, recordFormats); err != nil {
			return err
		}
		switch parseParser {
		case "rule", "llm":
			return nil
		default:
			return fmt.Errorf("invalid parser '%s' (valid: rule, llm)", parseParser)
		}
	},
	RunE: runParse,
}

var (
	parseConfig common.CommandConfig
	parseParser string
)

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json or text")
	parseCmd.Flags().StringVar(&parseParser, "parser", "rule", "Resume parser: rule or llm")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	var provider ai.Provider
	if parseParser == "llm" {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("AI API key is required for the llm parser (set RESUMESCREEN_AI_APIKEY or configure Vault)")
		}
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

	resumeParser, err := parser.New(parseParser, provider, logger)
	if err != nil {
		return err
	}

	createInput := func(paths []string) (string, error) {
		if len(paths) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(paths))
		}
		return paths[0], nil
	}

	logDetails := func(path string, cfg common.CommandConfig) {
		logger.Info("Parsing resume",
			"file", path,
			"parser", parseParser,
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, path string) (types.CandidateRecord, error) {
		text, err := extract.Text(path)
		if err != nil {
			return types.CandidateRecord{}, err
		}
		return resumeParser.Parse(ctx, path, text)
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsed successfully")
	return nil
}
