package smoketest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shayanxjavid/Feedback-Hub/pkg/logger"
)

// Run executes the complete smoke test against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting sentiment smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("texts", config.NumTexts),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate feedback samples
	samples := generateSamples(ctx, config, stats)

	// Step 3: Submit single analyses concurrently and verify labels
	if err := submitSingles(ctx, config, samples, stats); err != nil {
		return fmt.Errorf("single analysis submission failed: %w", err)
	}

	// Step 4: Submit batches and verify shape and order
	if err := submitBatches(ctx, config, samples, stats); err != nil {
		return fmt.Errorf("batch analysis submission failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.SinglesFailed > 0 {
		return fmt.Errorf("%d single analyses failed or mismatched", stats.SinglesFailed)
	}

	logger.Get().Info(ctx, "smoke test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/health")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("service reports status %q", health.Status)
	}

	logger.Get().Info(ctx, "service is healthy", logger.String("service", health.Service))
	return nil
}

// submitSingles posts each sample to /analyze with a bounded worker pool,
// checking the returned label against the sample's expected verdict.
func submitSingles(ctx context.Context, config *Config, samples []Sample, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/analyze"

	var (
		matched int64
		failed  int64
	)

	jobs := make(chan Sample)
	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sample := range jobs {
				if err := analyzeOne(ctx, client, url, sample, config.Verbose); err != nil {
					atomic.AddInt64(&failed, 1)
					logger.Get().Warn(ctx, "single analysis failed",
						logger.String("id", sample.ID),
						logger.Error(err),
					)
					continue
				}
				atomic.AddInt64(&matched, 1)
			}
		}()
	}

	for _, sample := range samples {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return fmt.Errorf("cancelled: %w", ctx.Err())
		case jobs <- sample:
		}
	}
	close(jobs)
	wg.Wait()

	stats.SinglesSent = len(samples)
	stats.SinglesMatched = int(matched)
	stats.SinglesFailed = int(failed)
	return nil
}

// analyzeOne submits one text and verifies the response invariants.
func analyzeOne(ctx context.Context, client *HTTPClient, url string, sample Sample, verbose bool) error {
	resp, err := client.Post(ctx, url, TextInput{Text: sample.Text})
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	if result.Score < 0 || result.Score > 1 {
		return fmt.Errorf("score %v outside [0, 1]", result.Score)
	}
	if sample.Expected != "" && result.Label != sample.Expected {
		return fmt.Errorf("expected label %q, got %q", sample.Expected, result.Label)
	}

	if verbose {
		logger.Get().Debug(ctx, "analyzed",
			logger.String("id", sample.ID),
			logger.String("label", result.Label),
			logger.Float64("score", result.Score),
		)
	}
	return nil
}

// submitBatches posts the samples in chunks to /analyze/batch and verifies
// that every response preserves input length and order.
func submitBatches(ctx context.Context, config *Config, samples []Sample, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/analyze/batch"

	for start := 0; start < len(samples); start += config.BatchSize {
		end := start + config.BatchSize
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[start:end]

		inputs := make([]TextInput, len(chunk))
		for i, sample := range chunk {
			inputs[i] = TextInput{Text: sample.Text}
		}

		resp, err := client.Post(ctx, url, inputs)
		if err != nil {
			return err
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected batch status %d: %s", resp.StatusCode, string(body))
		}

		var batch BatchResponse
		if err := json.Unmarshal(body, &batch); err != nil {
			return fmt.Errorf("failed to decode batch response: %w", err)
		}
		if len(batch.Results) != len(chunk) {
			return fmt.Errorf("batch returned %d results for %d inputs", len(batch.Results), len(chunk))
		}

		stats.BatchesSent++
		for _, item := range batch.Results {
			if _, isErr := item["error"]; isErr {
				stats.BatchItemErrors++
				continue
			}
			stats.BatchItemsOK++
		}
	}

	return nil
}

// displayFinalStats logs the aggregated run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "smoke test finished",
		logger.Int("textsGenerated", stats.TextsGenerated),
		logger.Int("singlesSent", stats.SinglesSent),
		logger.Int("singlesMatched", stats.SinglesMatched),
		logger.Int("singlesFailed", stats.SinglesFailed),
		logger.Int("batchesSent", stats.BatchesSent),
		logger.Int("batchItemsOK", stats.BatchItemsOK),
		logger.Int("batchItemErrors", stats.BatchItemErrors),
		logger.String("duration", stats.Duration.String()),
	)
}
