package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after an
// optional .env file is loaded. SSH and DNS stay off until their ports are
// set.
type Config struct {
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
	SSHPort  int `env:"SSH_PORT" envDefault:"0"`
	DNSPort  int `env:"DNS_PORT" envDefault:"0"`

	Provider       string        `env:"LLM_PROVIDER" envDefault:"ollama"`
	OllamaURL      string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OpenAIURL      string        `env:"OPENAI_API_URL" envDefault:"http://localhost:11434"`
	OpenAIKey      string        `env:"OPENAI_API_KEY"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"120s"`

	CatalogFile   string `env:"MODELS_FILE" envDefault:"models.yaml"`
	QuestionsFile string `env:"QUESTIONS_FILE" envDefault:"questions.txt"`
	LogFile       string `env:"LOG_FILE" envDefault:"dialectica.log"`

	AuditDB     string `env:"AUDIT_DB" envDefault:"dialectica_audit.db"`
	EnableAudit bool   `env:"ENABLE_ASK_AUDIT" envDefault:"true"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	RatePerSecond float64       `env:"RATE_LIMIT_PER_SEC" envDefault:"1"`
	RateBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// DNS answers must fit a TXT record, so that channel runs cooler and
	// shorter than the catalog defaults.
	DNSModel       string  `env:"DNS_LLM_MODEL"`
	DNSMaxTokens   int     `env:"DNS_LLM_MAX_TOKENS" envDefault:"200"`
	DNSTemperature float64 `env:"DNS_LLM_TEMPERATURE" envDefault:"0.3"`
}

// loadConfig reads .env when present, then the environment.
func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found", "error", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
