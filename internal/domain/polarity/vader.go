package polarity

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

// Patterns for markup stripping. Inline links keep their text; bare URLs
// carry no sentiment and are dropped entirely.
var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// Option applies a configuration option to the VADERAnalyzer.
type Option func(*VADERAnalyzer)

// WithMarkupStripping flattens markdown and removes URLs before scoring.
// Useful when the incoming text originates from rich-text feedback forms.
func WithMarkupStripping() Option {
	return func(a *VADERAnalyzer) {
		a.stripMarkup = true
	}
}

// VADERAnalyzer implements Analyzer using the VADER lexicon. The underlying
// lexicon is loaded once at construction and never mutated, so a single
// instance can be shared across concurrent requests.
type VADERAnalyzer struct {
	analyzer    *govader.SentimentIntensityAnalyzer
	stripMarkup bool
}

// NewVADERAnalyzer creates a VADER-backed analyzer with configuration options.
func NewVADERAnalyzer(opts ...Option) *VADERAnalyzer {
	a := &VADERAnalyzer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Score computes VADER polarity scores for the given text.
func (a *VADERAnalyzer) Score(ctx context.Context, text string) (Scores, error) {
	if err := ctx.Err(); err != nil {
		return Scores{}, fmt.Errorf("context cancelled: %w", err)
	}

	if a.stripMarkup {
		text = stripMarkup(text)
	}

	sentiment := a.analyzer.PolarityScores(text)
	return Scores{
		Positive: sentiment.Positive,
		Negative: sentiment.Negative,
		Neutral:  sentiment.Neutral,
		Compound: sentiment.Compound,
	}, nil
}

// stripMarkup reduces inline links to their anchor text, renders the
// remaining markdown, drops the HTML tags, and removes bare URLs. Link
// reduction runs first so anchor words survive URL removal.
func stripMarkup(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")

	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	plain = urlPattern.ReplaceAllString(plain, "")

	return strings.TrimSpace(strings.Join(strings.Fields(plain), " "))
}
