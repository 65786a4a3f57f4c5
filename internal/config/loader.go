package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/subosito/gotenv"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SENTIMENT_CONFIG is set
//  3. env (prefix SENTIMENT_), after loading a local .env if present
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	// A local .env feeds the env provider below; absence is not an error.
	_ = gotenv.Load()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SENTIMENT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SENTIMENT_ADDR, SENTIMENT_MAX_BATCH_SIZE, ...
	// Map env keys like SENTIMENT_MAX_TEXT_LENGTH -> max_text_length.
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SENTIMENT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "sentiment_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.MaxTextLength < 1:
		return nil, fmt.Errorf("%w: max_text_length must be positive", ErrInvalidConfig)
	case cfg.MaxBatchSize < 1:
		return nil, fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case cfg.BatchWorkerCount < 1:
		return nil, fmt.Errorf("%w: batch_worker_count must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
