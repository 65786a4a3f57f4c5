// Package classify maps raw polarity scores to sentiment results.
package classify

import (
	"context"
	"fmt"
	"math"

	"github.com/shayanxjavid/Feedback-Hub/internal/domain/polarity"
	"github.com/shayanxjavid/Feedback-Hub/internal/domain/types"
)

// Classification thresholds on the compound score. The boundaries are
// inclusive: a compound of exactly +0.05 is positive, exactly -0.05 negative.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Rounding precision for the externally visible values. Confidence is
// rounded to 2 decimals, detail scores to 4. Both use round half away from
// zero (math.Round); this convention is observable in responses and must
// not change without versioning the API.
const (
	scorePrecision  = 2
	detailPrecision = 4
)

// Classifier turns polarity scores into sentiment results. It is a pure
// function of the input text given a fixed analyzer.
type Classifier struct {
	analyzer polarity.Analyzer
}

// New creates a Classifier on top of the given analyzer.
func New(analyzer polarity.Analyzer) *Classifier {
	return &Classifier{analyzer: analyzer}
}

// Classify scores text and applies the threshold and normalization policy.
// It fails only when the underlying analyzer fails.
func (c *Classifier) Classify(ctx context.Context, text string) (types.Result, error) {
	scores, err := c.analyzer.Score(ctx, text)
	if err != nil {
		return types.Result{}, fmt.Errorf("polarity scoring failed: %w", err)
	}

	label := labelFor(scores.Compound)

	// Remap compound from [-1, 1] to [0, 1]: -1 -> 0, 0 -> 0.5, 1 -> 1.
	// The label boundary (±0.05) and the score midpoint (0.5) are
	// independent signals; confidence is never derived from the label.
	score := roundTo((scores.Compound+1)/2, scorePrecision)

	return types.Result{
		Label: label,
		Score: score,
		Details: map[string]float64{
			"compound": roundTo(scores.Compound, detailPrecision),
			"positive": roundTo(scores.Positive, detailPrecision),
			"negative": roundTo(scores.Negative, detailPrecision),
			"neutral":  roundTo(scores.Neutral, detailPrecision),
		},
	}, nil
}

// labelFor assigns the sentiment label for a compound score.
func labelFor(compound float64) types.Label {
	switch {
	case compound >= positiveThreshold:
		return types.LabelPositive
	case compound <= negativeThreshold:
		return types.LabelNegative
	default:
		return types.LabelNeutral
	}
}

// roundTo rounds v half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}
