// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Service identity reported by the info and health endpoints.
const (
	ServiceName    = "sentiment-analyzer"
	ServiceVersion = "1.0.0"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// MaxTextLength caps the length of a single text in characters.
	MaxTextLength int `koanf:"max_text_length"`

	// MaxBatchSize caps the number of items in a batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// BatchWorkerCount bounds concurrent item analysis within one batch.
	BatchWorkerCount int `koanf:"batch_worker_count"`

	// StripMarkup flattens markdown and removes URLs before scoring.
	StripMarkup bool `koanf:"strip_markup"`
}

// New creates a Config populated with defaults. The length and batch limits
// match the public API contract and should only be lowered, never raised,
// without revisiting the documented limits.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8000",
		MaxTextLength:    10_000,
		MaxBatchSize:     100,
		BatchWorkerCount: runtime.NumCPU(),
		StripMarkup:      false,
	}
}
