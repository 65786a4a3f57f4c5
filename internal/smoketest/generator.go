package smoketest

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/shayanxjavid/Feedback-Hub/pkg/logger"
)

// Feedback phrase pools. Each pool carries an unambiguous verdict so the
// smoke test can check the service's labels without embedding a lexicon.
var (
	positivePhrases = []string{
		"I love this product! It's amazing!",
		"Fantastic support, the team resolved my issue in minutes.",
		"Great value for money, would happily buy again.",
		"The new dashboard is wonderful and so easy to use.",
		"Excellent experience from start to finish, thank you!",
	}
	negativePhrases = []string{
		"This is terrible, nothing works as advertised.",
		"Awful customer service, I waited two weeks for a reply.",
		"The update broke everything, I am extremely disappointed.",
		"Horrible experience, I want a refund immediately.",
		"Worst purchase I have made this year.",
	}
	neutralPhrases = []string{
		"The package arrived on Tuesday.",
		"I used the export feature yesterday.",
		"The invoice lists three items.",
		"Settings can be changed from the profile page.",
		"The report covers the last quarter.",
	}
)

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSamples creates the requested number of feedback samples with
// tracking IDs, cycling through the verdict pools.
func generateSamples(ctx context.Context, config *Config, stats *Stats) []Sample {
	logger.Get().Info(ctx, "generating feedback samples", logger.Int("numTexts", config.NumTexts))

	samples := make([]Sample, config.NumTexts)
	for i := range samples {
		var text, expected string
		switch i % 3 {
		case 0:
			text = positivePhrases[getRandomInt(len(positivePhrases))]
			expected = "positive"
		case 1:
			text = negativePhrases[getRandomInt(len(negativePhrases))]
			expected = "negative"
		default:
			text = neutralPhrases[getRandomInt(len(neutralPhrases))]
			expected = "neutral"
		}
		samples[i] = Sample{
			ID:       uuid.New().String(),
			Text:     text,
			Expected: expected,
		}
	}

	stats.TextsGenerated = len(samples)
	return samples
}
