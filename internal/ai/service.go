package ai

import (
	"context"
	"fmt"

	"resumescreen/internal/config"
	"resumescreen/internal/errors"
)

// Service handles AI operations for resume screening
type Service struct {
	Provider Provider // Exported for access from pipeline package
	config   *config.AIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance
func NewService(cfg *config.AIConfig, logger *errors.Logger) (*Service, error) {
	var provider Provider
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"embedding_model", cfg.EmbeddingModel,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"use_system_prompts", cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// GetModelInfo returns information about the extraction model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// GetEmbeddingModelInfo returns information about the embedding model
func (s *Service) GetEmbeddingModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetEmbeddingModelInfo(ctx)
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.Provider.Close()
}
