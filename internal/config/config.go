package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Enrichment
	AnthropicAPIKey string
	AnthropicModel  string
	EnrichPolicy    string // always | high_risk_only | never
	EnrichTimeout   time.Duration

	// Upload limits
	MaxUploadBytes int64

	// Report persistence
	ReportsDir    string
	HistoryDBPath string

	// Risk rules
	RulesPath string // optional YAML override, empty = built-in table

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("CONTRACTAI_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		EnrichPolicy:    envOr("ENRICH_POLICY", "high_risk_only"),
		EnrichTimeout:   envDuration("ENRICH_TIMEOUT", 60*time.Second),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ReportsDir:    envOr("REPORTS_DIR", "reports"),
		HistoryDBPath: os.Getenv("HISTORY_DB_PATH"),

		RulesPath: os.Getenv("RISK_RULES_PATH"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = 60 * time.Second
	}
	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = cfg.ReportsDir + "/history.db"
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CONTRACTAI_API_KEY is required")
	}
	switch c.EnrichPolicy {
	case "always", "high_risk_only", "never":
	default:
		return fmt.Errorf("ENRICH_POLICY must be always, high_risk_only or never (got %q)", c.EnrichPolicy)
	}
	if c.EnrichPolicy != "never" && c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required unless ENRICH_POLICY=never")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
