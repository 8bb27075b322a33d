package match

import (
	"context"
	"strings"
	"sync"

	"resumescreen/internal/ai"
	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/preprocess"
	"resumescreen/internal/types"
)

// Matcher computes semantic similarity between a resume and a job
// description. Embedding similarity is blended with TF-IDF cosine
// similarity; without an embedding provider it runs on TF-IDF alone.
type Matcher struct {
	provider ai.Provider
	config   *config.SemanticConfig
	logger   *errors.Logger

	mu          sync.Mutex
	initialized bool
	embedCache  map[string][]float32
}

func NewMatcher(provider ai.Provider, cfg *config.SemanticConfig, logger *errors.Logger) *Matcher {
	return &Matcher{
		provider:   provider,
		config:     cfg,
		logger:     logger,
		embedCache: make(map[string][]float32),
	}
}

// ensureReady verifies the embedding model once before first use.
// Subsequent calls are a no-op under the lock.
func (m *Matcher) ensureReady(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || m.provider == nil {
		return nil
	}

	info := m.provider.GetEmbeddingModelInfo(ctx)
	if info == nil || !info.Available {
		detail := "unknown"
		if info != nil && info.Error != "" {
			detail = info.Error
		}
		return errors.NewModelError(errors.ErrCodeModelLoadFailed,
			"Embedding model is not available", nil).
			WithContext("detail", detail)
	}

	if m.logger != nil {
		m.logger.Debug("Embedding model ready",
			"model", info.Name,
			"version", info.Version)
	}

	m.initialized = true
	return nil
}

// embed returns the embedding vector for text, caching results so a
// job description is only embedded once per run.
func (m *Matcher) embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	if vec, ok := m.embedCache[text]; ok {
		m.mu.Unlock()
		return vec, nil
	}
	m.mu.Unlock()

	vec, err := m.provider.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.embedCache[text] = vec
	m.mu.Unlock()
	return vec, nil
}

// Match computes the blended similarity for a pair of texts
func (m *Matcher) Match(ctx context.Context, input types.MatchInput) (types.MatchOutput, error) {
	score, err := m.Similarity(ctx, input.TextA, input.TextB)
	if err != nil {
		return types.MatchOutput{}, err
	}
	return types.MatchOutput{Similarity: score}, nil
}

// Similarity returns a score in [0, 1] for two texts
func (m *Matcher) Similarity(ctx context.Context, textA, textB string) (float64, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return 0, nil
	}

	tfidfScore := m.tfidfSimilarity(textA, textB)

	if m.provider == nil {
		return clip01(tfidfScore), nil
	}

	if err := m.ensureReady(ctx); err != nil {
		return 0, err
	}

	vecA, err := m.embed(ctx, textA)
	if err != nil {
		return 0, err
	}
	vecB, err := m.embed(ctx, textB)
	if err != nil {
		return 0, err
	}

	embedScore := preprocess.CosineFloat32(vecA, vecB)
	blended := m.config.EmbeddingWeight*embedScore + m.config.TfidfWeight*tfidfScore

	return clip01(blended), nil
}

func (m *Matcher) tfidfSimilarity(textA, textB string) float64 {
	v := preprocess.NewVectorizer()
	vectors := v.FitTransform([]string{
		preprocess.CleanText(textA),
		preprocess.CleanText(textB),
	})
	return preprocess.Cosine(vectors[0], vectors[1])
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
