// Package polarity defines the contract for lexicon-based polarity scoring.
package polarity

import "context"

// Scores holds the four raw polarity scores produced for a text.
// Positive, Negative and Neutral are per-category weights; Compound is the
// overall polarity in [-1, 1]. The category weights are not required to sum
// to any fixed value.
type Scores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Compound float64
}

// Analyzer scores a text for polarity. Implementations must be deterministic,
// side-effect free, and safe for concurrent use once constructed.
type Analyzer interface {
	// Score computes the polarity scores for text, honoring ctx for cancellation.
	Score(ctx context.Context, text string) (Scores, error)
}
