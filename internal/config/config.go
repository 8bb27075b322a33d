package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (RESUMESCREEN_AI_APIKEY, etc.)
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Scoring       ScoringConfig       `mapstructure:"scoring"`
	Semantic      SemanticConfig      `mapstructure:"semantic"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds AI service configuration
type AIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	EmbeddingModel   string               `mapstructure:"embeddingModel"`
	Timeout          time.Duration        `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	Temperature      float32              `mapstructure:"temperature"`
	UseSystemPrompts bool                 `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
	RateLimit        RateLimitConfig      `mapstructure:"rateLimit"`
}

// PromptConfig holds overrides for the candidate extraction prompts
type PromptConfig struct {
	ExtractSystem string `mapstructure:"extractSystem"`
	ExtractUser   string `mapstructure:"extractUser"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// RateLimitConfig holds outbound API rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int  `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int  `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
}

// ScoringConfig holds screening and ranking configuration
type ScoringConfig struct {
	Mode        string           `mapstructure:"mode"` // "rule", "semantic", or "combined"
	TopN        int              `mapstructure:"topN"`
	Weights     ScoreWeights     `mapstructure:"weights"`
	RuleWeights RuleWeights      `mapstructure:"ruleWeights"`
	Thresholds  ThresholdsConfig `mapstructure:"thresholds"`
}

// ScoreWeights holds the component and blend weights for scoring
type ScoreWeights struct {
	Skill      float64 `mapstructure:"skill"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
	Projects   float64 `mapstructure:"projects"`
	Company    float64 `mapstructure:"company"`
	Rule       float64 `mapstructure:"rule"`     // weight of the rule score in combined mode
	Semantic   float64 `mapstructure:"semantic"` // weight of the semantic score in combined mode
}

// RuleWeights holds point values on a 100-point scale for skill matching
type RuleWeights struct {
	RequiredSkillPoint  float64 `mapstructure:"requiredSkillPoint"`
	PreferredSkillPoint float64 `mapstructure:"preferredSkillPoint"`
	ProjectTechPoint    float64 `mapstructure:"projectTechPoint"`
	ProjectsCap         float64 `mapstructure:"projectsCap"`
	CompanyPoint        float64 `mapstructure:"companyPoint"`
	CompanyCap          float64 `mapstructure:"companyCap"`
	MustHavePenalty     float64 `mapstructure:"mustHavePenalty"`
}

// ThresholdsConfig holds classification thresholds on the final score
type ThresholdsConfig struct {
	Suitable float64 `mapstructure:"suitable"`
	Maybe    float64 `mapstructure:"maybe"`
}

// SemanticConfig holds the blend weights for semantic similarity
type SemanticConfig struct {
	EmbeddingWeight float64 `mapstructure:"embeddingWeight"`
	TfidfWeight     float64 `mapstructure:"tfidfWeight"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool             `mapstructure:"enabled"`
	ServiceName     string           `mapstructure:"serviceName"`
	ServiceVersion  string           `mapstructure:"serviceVersion"`
	ServiceInstance string           `mapstructure:"serviceInstance"`
	ConsoleOutput   bool             `mapstructure:"consoleOutput"`
	SampleRate      float64          `mapstructure:"sampleRate"`
	Tracing         TracingConfig    `mapstructure:"tracing"`
	Metrics         MetricsConfig    `mapstructure:"metrics"`
	Console         ConsoleConfig    `mapstructure:"console"`
	Prometheus      PrometheusConfig `mapstructure:"prometheus"`
	OTLP            OTLPConfig       `mapstructure:"otlp"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("RESUMESCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescreen/")
	v.AddConfigPath("$HOME/.resumescreen")
	v.AddConfigPath(".")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileUsed = v.ConfigFileUsed()
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply fallback logic
	config.applyFallbacks()

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	switch c.Scoring.Mode {
	case "rule", "semantic", "combined":
	default:
		return fmt.Errorf("invalid scoring mode: %s (must be 'rule', 'semantic', or 'combined')", c.Scoring.Mode)
	}

	if c.Scoring.TopN < 1 {
		return fmt.Errorf("scoring topN must be at least 1")
	}

	if c.Scoring.Weights.Rule < 0 || c.Scoring.Weights.Semantic < 0 {
		return fmt.Errorf("score blend weights must be non-negative")
	}
	if c.Scoring.Mode == "combined" && c.Scoring.Weights.Rule+c.Scoring.Weights.Semantic <= 0 {
		return fmt.Errorf("combined mode requires at least one positive blend weight")
	}

	if c.Scoring.Thresholds.Suitable < c.Scoring.Thresholds.Maybe {
		return fmt.Errorf("suitable threshold (%.2f) must not be below maybe threshold (%.2f)",
			c.Scoring.Thresholds.Suitable, c.Scoring.Thresholds.Maybe)
	}

	if c.Semantic.EmbeddingWeight < 0 || c.Semantic.TfidfWeight < 0 {
		return fmt.Errorf("semantic blend weights must be non-negative")
	}
	if c.Semantic.EmbeddingWeight+c.Semantic.TfidfWeight <= 0 {
		return fmt.Errorf("at least one semantic blend weight must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	return nil
}

// RequiresAI reports whether the current configuration needs the AI
// provider at all: semantic or combined scoring, or the LLM parser.
func (c *Config) RequiresAI(parserKind string) bool {
	return c.Scoring.Mode != "rule" || parserKind == "llm"
}

// ValidateAIKey checks that an API key is available when the AI provider
// is needed. Rule-only runs with the rule parser never touch the API.
func (c *Config) ValidateAIKey(parserKind string) error {
	if !c.RequiresAI(parserKind) {
		return nil
	}
	if c.AI.APIKey == "" {
		return fmt.Errorf("AI API key is required for this mode (set RESUMESCREEN_AI_APIKEY or configure Vault)")
	}
	return nil
}
