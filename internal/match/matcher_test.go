package match

import (
	"context"
	"math"
	"testing"

	"resumescreen/internal/ai"
	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/types"
)

type stubEmbedder struct {
	vectors     map[string][]float32
	calls       int
	unavailable bool
}

func (s *stubEmbedder) ExtractCandidate(_ context.Context, _ types.ExtractCandidateInput) (types.ExtractCandidateOutput, *ai.TokenUsage, error) {
	return types.ExtractCandidateOutput{}, nil, nil
}

func (s *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) GetModelInfo(_ context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub", Available: true}
}

func (s *stubEmbedder) GetEmbeddingModelInfo(_ context.Context) *ai.ModelInfo {
	if s.unavailable {
		return &ai.ModelInfo{Name: "stub-embed", Available: false, Error: "model offline"}
	}
	return &ai.ModelInfo{Name: "stub-embed", Available: true}
}

func (s *stubEmbedder) Close() error { return nil }

func testSemanticConfig() *config.SemanticConfig {
	return &config.SemanticConfig{
		EmbeddingWeight: 0.7,
		TfidfWeight:     0.3,
	}
}

func TestSimilarityIdenticalTexts(t *testing.T) {
	m := NewMatcher(&stubEmbedder{}, testSemanticConfig(), nil)

	score, err := m.Similarity(context.Background(),
		"senior golang engineer with kubernetes experience",
		"senior golang engineer with kubernetes experience")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}

	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("Expected similarity 1.0 for identical texts, got %f", score)
	}
}

func TestSimilarityBlending(t *testing.T) {
	embedder := &stubEmbedder{
		vectors: map[string][]float32{
			"alpha beta gamma": {1, 0, 0},
			"delta epsilon":    {0, 1, 0},
		},
	}
	m := NewMatcher(embedder, testSemanticConfig(), nil)

	// Orthogonal embeddings and disjoint vocabulary: both components zero
	score, err := m.Similarity(context.Background(), "alpha beta gamma", "delta epsilon")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected similarity 0, got %f", score)
	}
}

func TestSimilarityWithoutEmbedder(t *testing.T) {
	m := NewMatcher(nil, testSemanticConfig(), nil)

	score, err := m.Similarity(context.Background(),
		"python sql developer",
		"python sql developer")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("Expected TF-IDF similarity 1.0 for identical texts, got %f", score)
	}

	partial, err := m.Similarity(context.Background(),
		"python developer building services",
		"java developer building applications")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if partial <= 0 || partial >= 1 {
		t.Errorf("Expected partial similarity in (0, 1), got %f", partial)
	}
}

func TestSimilarityEmptyText(t *testing.T) {
	embedder := &stubEmbedder{}
	m := NewMatcher(embedder, testSemanticConfig(), nil)

	score, err := m.Similarity(context.Background(), "", "some job description")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected similarity 0 for empty text, got %f", score)
	}
	if embedder.calls != 0 {
		t.Errorf("Expected no embedding calls for empty text, got %d", embedder.calls)
	}
}

func TestSimilarityModelUnavailable(t *testing.T) {
	m := NewMatcher(&stubEmbedder{unavailable: true}, testSemanticConfig(), nil)

	_, err := m.Similarity(context.Background(), "text a", "text b")
	if err == nil {
		t.Fatal("Expected error when embedding model is unavailable")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeModelLoadFailed {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeModelLoadFailed, appErr.Code)
	}
}

func TestEmbedCaching(t *testing.T) {
	embedder := &stubEmbedder{}
	m := NewMatcher(embedder, testSemanticConfig(), nil)

	job := "golang engineer"
	for _, resume := range []string{"resume one", "resume two", "resume three"} {
		if _, err := m.Similarity(context.Background(), resume, job); err != nil {
			t.Fatalf("Similarity failed: %v", err)
		}
	}

	// Three resumes plus one cached job embedding
	if embedder.calls != 4 {
		t.Errorf("Expected 4 embedding calls with caching, got %d", embedder.calls)
	}
}

func TestMatchOutput(t *testing.T) {
	m := NewMatcher(nil, testSemanticConfig(), nil)

	out, err := m.Match(context.Background(), types.MatchInput{
		TextA: "distributed systems engineer",
		TextB: "distributed systems engineer",
	})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if math.Abs(out.Similarity-1.0) > 1e-9 {
		t.Errorf("Expected similarity 1.0, got %f", out.Similarity)
	}
}
