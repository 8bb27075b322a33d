package ai

import (
	"context"

	"resumescreen/internal/types"
)

// Provider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type Provider interface {
	ExtractCandidate(ctx context.Context, input types.ExtractCandidateInput) (types.ExtractCandidateOutput, *TokenUsage, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetEmbeddingModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
