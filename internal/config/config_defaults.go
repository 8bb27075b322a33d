package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.embeddingModel", "gemini-embedding-001")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.temperature", 0.1) // Low temperature for consistent extraction
	v.SetDefault("ai.useSystemPrompts", true)
	v.SetDefault("ai.customPrompts.extractSystem", "")
	v.SetDefault("ai.customPrompts.extractUser", "")

	// Circuit Breaker Configuration
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	// Outbound rate limiting
	v.SetDefault("ai.rateLimit.enabled", true)
	v.SetDefault("ai.rateLimit.requestsPerMin", 60)
	v.SetDefault("ai.rateLimit.burstCapacity", 10)

	// Scoring Configuration
	v.SetDefault("scoring.mode", "combined")
	v.SetDefault("scoring.topN", 10)
	v.SetDefault("scoring.weights.skill", 0.4)
	v.SetDefault("scoring.weights.experience", 0.25)
	v.SetDefault("scoring.weights.education", 0.15)
	v.SetDefault("scoring.weights.projects", 0.1)
	v.SetDefault("scoring.weights.company", 0.1)
	v.SetDefault("scoring.weights.rule", 0.5)
	v.SetDefault("scoring.weights.semantic", 0.5)
	v.SetDefault("scoring.ruleWeights.requiredSkillPoint", 10.0)
	v.SetDefault("scoring.ruleWeights.preferredSkillPoint", 3.0)
	v.SetDefault("scoring.ruleWeights.projectTechPoint", 2.0)
	v.SetDefault("scoring.ruleWeights.projectsCap", 10.0)
	v.SetDefault("scoring.ruleWeights.companyPoint", 8.0)
	v.SetDefault("scoring.ruleWeights.companyCap", 20.0)
	v.SetDefault("scoring.ruleWeights.mustHavePenalty", 30.0)
	v.SetDefault("scoring.thresholds.suitable", 0.8)
	v.SetDefault("scoring.thresholds.maybe", 0.5)

	// Semantic similarity blend
	v.SetDefault("semantic.embeddingWeight", 0.7)
	v.SetDefault("semantic.tfidfWeight", 0.3)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "csv", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumescreen")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
