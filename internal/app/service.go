// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shayanxjavid/Feedback-Hub/internal/domain/classify"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/polarity"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/types"
	"github.com/shayanxjavid/Feedback-Hub/pkg/logger"
	"github.com/shayanxjavid/Feedback-Hub/pkg/metrics"
)

// Default service limits. These mirror the published API contract.
const (
	defaultMaxTextLength = 10_000
	defaultMaxBatchSize  = 100

	// truncatedTextRunes bounds the echoed text in batch error entries.
	truncatedTextRunes = 50
)

// Service implements the API dependencies for sentiment analysis.
type Service struct {
	mu sync.RWMutex

	// Core components
	analyzer   polarity.Analyzer
	classifier *classify.Classifier

	// Configuration
	maxTextLength int
	maxBatchSize  int
	batchWorkers  int
	stripMarkup   bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithAnalyzer injects a polarity analyzer, replacing the default VADER one.
func WithAnalyzer(analyzer polarity.Analyzer) Option {
	return func(s *Service) {
		if analyzer != nil {
			s.analyzer = analyzer
		}
	}
}

// WithMaxTextLength caps single-text length in characters.
func WithMaxTextLength(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxTextLength = limit
		}
	}
}

// WithMaxBatchSize caps the number of items per batch request.
func WithMaxBatchSize(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxBatchSize = limit
		}
	}
}

// WithBatchWorkers bounds concurrent item analysis within one batch.
func WithBatchWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.batchWorkers = count
		}
	}
}

// WithMarkupStripping flattens markdown before scoring (default analyzer only).
func WithMarkupStripping(enabled bool) Option {
	return func(s *Service) {
		s.stripMarkup = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxTextLength: defaultMaxTextLength,
		maxBatchSize:  defaultMaxBatchSize,
		batchWorkers:  runtime.NumCPU(),
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the analyzer and classifier. The VADER lexicon is loaded
// here, before the service accepts traffic, and is read-only afterwards.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting sentiment service...")

	if s.analyzer == nil {
		var opts []polarity.Option
		if s.stripMarkup {
			opts = append(opts, polarity.WithMarkupStripping())
		}
		s.analyzer = polarity.NewVADERAnalyzer(opts...)
	}
	s.classifier = classify.New(s.analyzer)

	s.started = true
	s.logger.Info(ctx, "sentiment service started",
		logger.Int("maxTextLength", s.maxTextLength),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("batchWorkers", s.batchWorkers),
	)

	return nil
}

// Stop shuts down the service. The analyzer holds no external resources, so
// stopping only flips the lifecycle state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "sentiment service stopped")
}

// Analyze validates and classifies a single text.
// Validation failures carry ErrValidation; analyzer failures carry ErrAnalysis
// with the underlying cause. Neither is retried.
func (s *Service) Analyze(ctx context.Context, text string) (types.Result, error) {
	classifier, err := s.getClassifier()
	if err != nil {
		return types.Result{}, err
	}

	if err := s.validateText(text); err != nil {
		metrics.RecordValidationError()
		return types.Result{}, err
	}

	start := time.Now()
	result, err := classifier.Classify(ctx, text)
	metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordAnalysisError()
		s.logger.Error(ctx, "analysis failed", logger.Error(err))
		return types.Result{}, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	metrics.RecordAnalysis(string(result.Label))
	metrics.ObserveTextLength(utf8.RuneCountInString(text))
	return result, nil
}

// AnalyzeBatch validates and classifies a sequence of texts.
// The whole batch is rejected before any processing when it exceeds the batch
// size limit or contains an invalid item. Per-item analyzer failures are
// isolated into error entries; the output always matches the input 1:1 in
// length and order.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string) ([]types.BatchItem, error) {
	classifier, err := s.getClassifier()
	if err != nil {
		return nil, err
	}

	metrics.RecordBatchRequest()
	metrics.ObserveBatchSize(len(texts))

	if len(texts) > s.maxBatchSize {
		metrics.RecordValidationError()
		return nil, fmt.Errorf("%w: maximum %d texts allowed per batch request", ErrValidation, s.maxBatchSize)
	}
	for i, text := range texts {
		if err := s.validateText(text); err != nil {
			metrics.RecordValidationError()
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	results := make([]types.BatchItem, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	// Fan the items out over a bounded worker pool. Each result lands at its
	// input position, so execution order never leaks into the response.
	indexes := make(chan int)
	var wg sync.WaitGroup
	workers := s.batchWorkers
	if workers > len(texts) {
		workers = len(texts)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = s.analyzeItem(ctx, classifier, texts[i])
			}
		}()
	}
	for i := range texts {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results, nil
}

// analyzeItem classifies one batch item, converting a failure into an error
// entry instead of aborting the batch.
func (s *Service) analyzeItem(ctx context.Context, classifier *classify.Classifier, text string) types.BatchItem {
	start := time.Now()
	result, err := classifier.Classify(ctx, text)
	metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordAnalysisError()
		metrics.RecordBatchItemError()
		s.logger.Error(ctx, "batch item analysis failed", logger.Error(err))
		return types.BatchItem{
			Error: err.Error(),
			Text:  truncateText(text, truncatedTextRunes),
		}
	}

	metrics.RecordAnalysis(string(result.Label))
	metrics.ObserveTextLength(utf8.RuneCountInString(text))
	return types.BatchItem{Result: &result}
}

// validateText enforces the character length contract for one text.
func (s *Service) validateText(text string) error {
	length := utf8.RuneCountInString(text)
	if length < 1 || length > s.maxTextLength {
		return fmt.Errorf("%w: text length must be between 1 and %d characters, got %d", ErrValidation, s.maxTextLength, length)
	}
	return nil
}

// getClassifier returns the classifier if the service has been started.
func (s *Service) getClassifier() (*classify.Classifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.classifier == nil {
		return nil, ErrNotStarted
	}
	return s.classifier, nil
}

// truncateText echoes at most limit runes of text, always marking the echo
// with a trailing ellipsis.
func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":       s.started,
		"maxTextLength": s.maxTextLength,
		"maxBatchSize":  s.maxBatchSize,
		"batchWorkers":  s.batchWorkers,
		"stripMarkup":   s.stripMarkup,
	}
}
