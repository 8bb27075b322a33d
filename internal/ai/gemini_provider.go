package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"resumescreen/internal/config"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.AIConfig
	circuitBreaker *AICircuitBreaker
	embedBreaker   *EmbedCircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	limiter        *rate.Limiter
	logger         *screenErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(cfg *config.AIConfig, logger *screenErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		perSecond := rate.Limit(float64(cfg.RateLimit.RequestsPerMin) / 60.0)
		limiter = rate.NewLimiter(perSecond, cfg.RateLimit.BurstCapacity)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker("extract", cfg, logger),
		embedBreaker:   NewEmbedCircuitBreaker("embed", cfg, logger),
		modelBreaker:   NewModelCircuitBreaker("info", cfg, logger),
		limiter:        limiter,
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the extraction model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	return g.modelInfo(ctx, g.config.Model)
}

// GetEmbeddingModelInfo checks the readiness and availability of the embedding model
func (g *GeminiProvider) GetEmbeddingModelInfo(ctx context.Context) *ModelInfo {
	return g.modelInfo(ctx, g.config.EmbeddingModel)
}

func (g *GeminiProvider) modelInfo(ctx context.Context, modelName string) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      modelName,
		Available: false,
	}

	// Create a timeout context for the model check
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Get model information from Gemini API with circuit breaker
	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, modelName, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", modelName,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	// Model is available, populate info
	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", modelName,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// wait blocks until the outbound rate limiter allows another API call
func (g *GeminiProvider) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}

// classifyError maps transport-level failures to the network error type
// so callers can distinguish them from model failures. Failures are not
// retried; they propagate to the caller.
func classifyError(operation string, err error) *screenErrors.AppError {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return screenErrors.NewNetworkError(screenErrors.ErrCodeNetworkFailed,
			"Network failure during "+operation, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return screenErrors.NewNetworkError(screenErrors.ErrCodeNetworkFailed,
				fmt.Sprintf("Upstream failure (HTTP %d) during %s", apiErr.Code, operation), err)
		}
	}

	return screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
		"Failed to complete "+operation, err)
}

// ExtractCandidate implements Provider for structured candidate extraction
func (g *GeminiProvider) ExtractCandidate(ctx context.Context, input types.ExtractCandidateInput) (types.ExtractCandidateOutput, *TokenUsage, error) {
	var output types.ExtractCandidateOutput

	tracer := otel.Tracer("resumescreen.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.extract_candidate")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)

	genaiConfig := g.buildExtractSchema()

	systemPrompt := resolvePrompt(g.config.CustomPrompts.ExtractSystem, DefaultExtractSystemPrompt)
	if g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	userPrompt := fmt.Sprintf(
		resolvePrompt(g.config.CustomPrompts.ExtractUser, DefaultExtractUserPrompt),
		input.ResumeText)

	if err := g.wait(ctx); err != nil {
		return output, nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
			"Rate limiter interrupted", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(opCtx, g.config.Model, genai.Text(userPrompt), genaiConfig)
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, classifyError("candidate extraction", err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, screenErrors.NewSchemaError(screenErrors.ErrCodeSchemaMismatch,
			"Extraction response does not match the candidate schema", err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.skills_count", len(output.Skills)),
	)
	return output, tokenUsage, nil
}

// EmbedText implements Provider for text embeddings
func (g *GeminiProvider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	tracer := otel.Tracer("resumescreen.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.embed_text")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.EmbeddingModel),
		attribute.Int("input.text_length", len(text)),
	)

	if err := g.wait(ctx); err != nil {
		return nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
			"Rate limiter interrupted", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	result, err := g.embedBreaker.ExecuteEmbed(func() (*genai.EmbedContentResponse, error) {
		return g.client.Models.EmbedContent(opCtx, g.config.EmbeddingModel,
			genai.Text(text), &genai.EmbedContentConfig{})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, classifyError("text embedding", err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		err := fmt.Errorf("empty embedding in response")
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
			"Embedding response contained no vector", err)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("output.dimensions", len(result.Embeddings[0].Values)),
	)
	return result.Embeddings[0].Values, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"embed_operations": g.embedBreaker.GetEmbedStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}

	// Overall health - all breakers must be healthy
	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() &&
		g.embedBreaker.IsEmbedHealthy() &&
		g.modelBreaker.IsModelHealthy()

	return stats
}

// Close implements Provider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	// Probably needed in streaming mode
	return nil
}

// buildExtractSchema creates the response schema for candidate extraction
func (g *GeminiProvider) buildExtractSchema() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":     {Type: genai.TypeString},
				"email":    {Type: genai.TypeString},
				"phone":    {Type: genai.TypeString},
				"location": {Type: genai.TypeString},
				"summary":  {Type: genai.TypeString},
				"skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"experience": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"company":     {Type: genai.TypeString},
							"title":       {Type: genai.TypeString},
							"dates":       {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
						},
						Required: []string{"company", "title"},
					},
				},
				"education": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"degree": {Type: genai.TypeString},
							"field":  {Type: genai.TypeString},
							"school": {Type: genai.TypeString},
							"year":   {Type: genai.TypeString},
						},
						Required: []string{"degree"},
					},
				},
				"projects": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString},
							"description": {Type: genai.TypeString},
							"technologies": {
								Type:  genai.TypeArray,
								Items: &genai.Schema{Type: genai.TypeString},
							},
						},
						Required: []string{"name"},
					},
				},
			},
			Required: []string{"name", "skills", "experience", "education"},
		},
	}

	// Apply temperature configuration if set
	if g.config.Temperature > 0 {
		temp := g.config.Temperature
		config.Temperature = &temp
	}

	return config
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
