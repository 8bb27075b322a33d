package config

import (
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  60 * time.Second,
			APIKey:   "test-key",
		},
		Scoring: ScoringConfig{
			Mode: "combined",
			TopN: 10,
			Weights: ScoreWeights{
				Skill: 0.5, Experience: 0.3, Education: 0.2,
				Rule: 0.5, Semantic: 0.5,
			},
			RuleWeights: RuleWeights{
				RequiredSkillPoint:  10,
				PreferredSkillPoint: 3,
				MustHavePenalty:     30,
			},
			Thresholds: ThresholdsConfig{Suitable: 0.8, Maybe: 0.5},
		},
		Semantic: SemanticConfig{EmbeddingWeight: 0.7, TfidfWeight: 0.3},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "csv", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"zero timeout", func(c *Config) { c.AI.Timeout = 0 }, true},
		{"bad scoring mode", func(c *Config) { c.Scoring.Mode = "hybrid" }, true},
		{"zero topN", func(c *Config) { c.Scoring.TopN = 0 }, true},
		{"negative blend weight", func(c *Config) { c.Scoring.Weights.Rule = -1 }, true},
		{"all-zero combined weights", func(c *Config) {
			c.Scoring.Weights.Rule = 0
			c.Scoring.Weights.Semantic = 0
		}, true},
		{"inverted thresholds", func(c *Config) {
			c.Scoring.Thresholds.Suitable = 0.4
			c.Scoring.Thresholds.Maybe = 0.5
		}, true},
		{"zero semantic weights", func(c *Config) {
			c.Semantic.EmbeddingWeight = 0
			c.Semantic.TfidfWeight = 0
		}, true},
		{"unknown default format", func(c *Config) { c.App.DefaultFormat = "yaml" }, true},
		{"rule mode without semantic weights ok", func(c *Config) {
			c.Scoring.Mode = "rule"
			c.Scoring.Weights.Semantic = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAIKey(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		parser  string
		apiKey  string
		wantErr bool
	}{
		{"rule mode rule parser without key", "rule", "rule", "", false},
		{"rule mode llm parser without key", "rule", "llm", "", true},
		{"combined mode without key", "combined", "rule", "", true},
		{"semantic mode without key", "semantic", "rule", "", true},
		{"combined mode with key", "combined", "llm", "k", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			cfg.Scoring.Mode = tt.mode
			cfg.AI.APIKey = tt.apiKey
			err := cfg.ValidateAIKey(tt.parser)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// Run from a scratch directory so a developer config.yaml is not picked up
	t.Chdir(t.TempDir())
	t.Setenv("RESUMESCREEN_AI_APIKEY", "env-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AI.Provider != "gemini" {
		t.Errorf("AI.Provider = %q, want %q", cfg.AI.Provider, "gemini")
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("AI.APIKey = %q, want env value", cfg.AI.APIKey)
	}
	if cfg.Scoring.Mode != "combined" {
		t.Errorf("Scoring.Mode = %q, want %q", cfg.Scoring.Mode, "combined")
	}
	if cfg.Scoring.TopN != 10 {
		t.Errorf("Scoring.TopN = %d, want 10", cfg.Scoring.TopN)
	}
	if cfg.Scoring.RuleWeights.MustHavePenalty != 30 {
		t.Errorf("RuleWeights.MustHavePenalty = %v, want 30", cfg.Scoring.RuleWeights.MustHavePenalty)
	}
	if cfg.Semantic.EmbeddingWeight != 0.7 || cfg.Semantic.TfidfWeight != 0.3 {
		t.Errorf("Semantic weights = %v/%v, want 0.7/0.3",
			cfg.Semantic.EmbeddingWeight, cfg.Semantic.TfidfWeight)
	}
	if cfg.Observability.ServiceInstance == "" {
		t.Error("Observability.ServiceInstance not generated")
	}
}
