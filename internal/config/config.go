package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds runtime configuration for the summarize command.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// Local model service
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"ollama" validate:"oneof=ollama"`
	OllamaHost     string        `env:"OLLAMA_HOST" envDefault:"http://localhost:11434" validate:"required,url|hostname_port"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"mistral" validate:"required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10m" validate:"gte=0"` // 0 waits indefinitely
	StartupTimeout time.Duration `env:"STARTUP_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	// Input limits
	MaxInputSize int64 `env:"MAX_INPUT_SIZE" envDefault:"10485760" validate:"gt=0"` // 10MB in bytes
}

// Load reads configuration from environment variables with defaults.
// A value that does not parse is an error rather than a silent zero.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints declared in the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
