package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env is the process configuration read from the environment.
// Desktop preferences live in Fyne's store; Env covers headless runs and secrets.
type Env struct {
	GeminiKey      string        `env:"GEMINI_API_KEY"`
	LegacyKey      string        `env:"API_KEY"`
	OpenAIKey      string        `env:"OPENAI_API_KEY"`
	Provider       string        `env:"AGECALC_PROVIDER" envDefault:"gemini"`
	Model          string        `env:"AGECALC_MODEL"`
	BaseURL        string        `env:"AGECALC_BASE_URL"`
	Lang           string        `env:"AGECALC_LANG" envDefault:"en"`
	Port           string        `env:"AGECALC_PORT" envDefault:"18080"`
	InsightTimeout time.Duration `env:"AGECALC_INSIGHT_TIMEOUT" envDefault:"30s"`
}

// LoadEnv merges optional .env files into the process environment and parses Env.
// Without arguments it looks for ./.env; a missing default file is not an error.
// Variables already set in the environment win over file values.
func LoadEnv(files ...string) (Env, error) {
	log := slog.With(LogKeyComponent, CompConfig)

	if len(files) == 0 {
		if err := godotenv.Load(DotEnvFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Env{}, fmt.Errorf("%s: %w", ErrEnvFile, err)
			}
			log.Debug(MsgEnvFileSkip, LogKeyFile, DotEnvFile)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvFile, err)
	}

	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	if cfg.InsightTimeout <= 0 {
		cfg.InsightTimeout = DefaultInsightTimeout
	}

	log.Debug(MsgEnvLoaded,
		LogKeyProvider, cfg.Provider,
		LogKeyLang, cfg.Lang,
		LogKeyPort, cfg.Port,
	)
	return cfg, nil
}

// APIKey returns the credential for the selected provider.
// API_KEY is accepted for Gemini as a legacy alias.
func (e Env) APIKey() string {
	switch e.Provider {
	case ProviderOpenAI:
		return e.OpenAIKey
	default:
		if e.GeminiKey != "" {
			return e.GeminiKey
		}
		return e.LegacyKey
	}
}
