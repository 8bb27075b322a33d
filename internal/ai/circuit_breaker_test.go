package ai

import (
	"testing"
	"time"

	"resumescreen/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each call family gets its own circuit breaker instance with its
	// own counters, so a failing embed path never trips extraction.

	cfg := &config.AIConfig{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash",
		EmbeddingModel: "gemini-embedding-001",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	extractCB := NewAICircuitBreaker("extract", cfg, nil)
	embedCB := NewEmbedCircuitBreaker("embed", cfg, nil)
	modelCB := NewModelCircuitBreaker("info", cfg, nil)

	t.Run("ExtractCircuitBreaker", func(t *testing.T) {
		stats := extractCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-extract"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}

		// Verify it's in closed state initially
		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("EmbedCircuitBreaker", func(t *testing.T) {
		stats := embedCB.GetEmbedStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-Embed-embed"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	t.Run("ModelCircuitBreaker", func(t *testing.T) {
		stats := modelCB.GetModelStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}

		expectedName := "AI-Model-info"
		if name != expectedName {
			t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
		}
	})

	// Verify that health states are independent
	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !extractCB.IsHealthy() {
			t.Error("Extract circuit breaker should be healthy initially")
		}
		if !embedCB.IsEmbedHealthy() {
			t.Error("Embed circuit breaker should be healthy initially")
		}
		if !modelCB.IsModelHealthy() {
			t.Error("Model circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	// Test that configuration values are properly applied to circuit breakers

	customConfig := &config.AIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewAICircuitBreaker("Test", customConfig, nil)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}

	expectedName := "AI-Test"
	if name != expectedName {
		t.Errorf("Expected circuit breaker name '%s', got '%s'", expectedName, name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	// Disabled breakers are nil and all wrappers treat nil as pass-through

	disabledConfig := &config.AIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	if cb := NewAICircuitBreaker("Disabled", disabledConfig, nil); cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}
	if cb := NewEmbedCircuitBreaker("Disabled", disabledConfig, nil); cb != nil {
		t.Fatal("Embed circuit breaker should be nil when disabled")
	}
	if cb := NewModelCircuitBreaker("Disabled", disabledConfig, nil); cb != nil {
		t.Fatal("Model circuit breaker should be nil when disabled")
	}

	var nilCB *AICircuitBreaker
	if !nilCB.IsHealthy() {
		t.Error("Nil circuit breaker should report healthy")
	}
	stats := nilCB.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Nil circuit breaker stats should report enabled=false")
	}
}
