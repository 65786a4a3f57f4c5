package smoketest

import (
	"fmt"
	"os"

	"github.com/shayanxjavid/Feedback-Hub/pkg/logger"
)

// SetupLogging initializes logging for the smoke test tool.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Sentiment Service Smoke Test
============================

A concurrent tool for exercising the sentiment analysis service end to end.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -texts int
        Number of feedback texts to generate and submit (default 300)
  -batch int
        Items per batch request (default 25)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Smoke test a local service
  go run cmd/smoke/main.go

  # Heavier run against a remote instance
  go run cmd/smoke/main.go -url http://sentiment:8000 -texts 5000 -workers 16
`)
}
