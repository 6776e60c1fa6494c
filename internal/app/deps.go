package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/llm"
	"meeting-summarizer/internal/logger"
)

// Deps bundles the runtime dependencies of the summarize command.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	LLM    llm.Client
}

// Build loads env, config, and shared components. A missing .env file is not an error.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return Deps{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Deps{}, err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr).With("run_id", uuid.NewString())

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return Deps{
		Config: cfg,
		Log:    log,
		LLM:    llmClient,
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "ollama":
		client, err := llm.NewOllamaClient(cfg.OllamaHost)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
		}
		log.Debug("using Ollama LLM client", "host", cfg.OllamaHost, "model", cfg.LLMModel)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid option: ollama)", cfg.LLMProvider)
	}
}
