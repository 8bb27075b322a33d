package parser

import (
	"context"
	"fmt"

	"resumescreen/internal/ai"
	"resumescreen/internal/errors"
	"resumescreen/internal/types"
)

// Parser turns raw resume text into a structured candidate record
type Parser interface {
	Parse(ctx context.Context, sourceFile, rawText string) (types.CandidateRecord, error)
	Method() types.ParseMethod
}

// New creates a parser for the given kind. The LLM parser needs a
// configured AI provider; the rule parser works offline.
func New(kind string, provider ai.Provider, logger *errors.Logger) (Parser, error) {
	switch types.ParseMethod(kind) {
	case types.ParseMethodRule:
		return NewRuleParser(logger), nil
	case types.ParseMethodLLM:
		if provider == nil {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"LLM parser requires a configured AI provider", nil)
		}
		return NewLLMParser(provider, logger), nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported parser kind: %s", kind), nil)
	}
}
