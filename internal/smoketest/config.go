package smoketest

import "time"

// Config holds configuration for the smoke test run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumTexts  int           // Number of texts to generate
	BatchSize int           // Items per batch request
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Sample is one generated feedback text with its expected verdict.
type Sample struct {
	ID       string // request tracking id
	Text     string
	Expected string // expected label, empty when unknown
}

// TextInput mirrors the POST /analyze request schema.
type TextInput struct {
	Text string `json:"text"`
}

// Result mirrors the sentiment result schema.
type Result struct {
	Label   string             `json:"label"`
	Score   float64            `json:"score"`
	Details map[string]float64 `json:"details"`
}

// BatchResponse mirrors the POST /analyze/batch response schema. Items keep
// their raw form so error entries can be told apart from results.
type BatchResponse struct {
	Results []map[string]interface{} `json:"results"`
}

// HealthResponse mirrors the GET /health schema.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Stats holds smoke test statistics.
type Stats struct {
	TextsGenerated  int
	SinglesSent     int
	SinglesMatched  int
	SinglesFailed   int
	BatchesSent     int
	BatchItemsOK    int
	BatchItemErrors int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
