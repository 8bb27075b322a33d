package parser

import (
	"context"
	"strings"

	"resumescreen/internal/ai"
	"resumescreen/internal/errors"
	"resumescreen/internal/types"

	"github.com/google/uuid"
)

// LLMParser delegates extraction to the configured AI provider and
// maps the structured response onto a candidate record.
type LLMParser struct {
	provider ai.Provider
	logger   *errors.Logger
}

func NewLLMParser(provider ai.Provider, logger *errors.Logger) *LLMParser {
	return &LLMParser{provider: provider, logger: logger}
}

func (p *LLMParser) Method() types.ParseMethod {
	return types.ParseMethodLLM
}

func (p *LLMParser) Parse(ctx context.Context, sourceFile, rawText string) (types.CandidateRecord, error) {
	if strings.TrimSpace(rawText) == "" {
		return types.CandidateRecord{}, errors.NewParseError(errors.ErrCodeParseFailed,
			"Resume text is empty", nil).WithContext("file", sourceFile)
	}

	output, usage, err := p.provider.ExtractCandidate(ctx, types.ExtractCandidateInput{
		ResumeText: rawText,
	})
	if err != nil {
		return types.CandidateRecord{}, err
	}

	// A response with neither name nor email nor skills is useless
	// downstream, treat it as a schema failure.
	if output.Name == "" && output.Email == "" && len(output.Skills) == 0 {
		return types.CandidateRecord{}, errors.NewSchemaError(errors.ErrCodeMissingField,
			"Extraction returned no identifying fields", nil).
			WithContext("file", sourceFile)
	}

	record := types.CandidateRecord{
		ID:          uuid.NewString(),
		SourceFile:  sourceFile,
		Name:        output.Name,
		Email:       output.Email,
		Phone:       output.Phone,
		Location:    output.Location,
		Summary:     output.Summary,
		Skills:      output.Skills,
		Experience:  output.Experience,
		Education:   output.Education,
		Projects:    output.Projects,
		RawText:     rawText,
		ParseMethod: types.ParseMethodLLM,
	}

	if p.logger != nil {
		fields := []any{
			"file", sourceFile,
			"name", record.Name,
			"skills", len(record.Skills),
		}
		if usage != nil {
			fields = append(fields,
				"input_tokens", usage.InputTokens,
				"output_tokens", usage.OutputTokens)
		}
		p.logger.Debug("LLM parser finished", fields...)
	}

	return record, nil
}
