// Package insight asks a generative model for trivia about a birth year.
package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-agecalc/internal/config"
)

// Insights is the two-field payload returned by the model.
// Extra fields in the response are ignored.
type Insights struct {
	HistoricalFact     string `json:"historicalFact"`
	InspirationalQuote string `json:"inspirationalQuote"`
}

// Fetcher retrieves insights for a birth year and a current age.
// Implementations make a single attempt: no retry, no caching.
type Fetcher interface {
	FetchInsights(ctx context.Context, birthYear, ageYears int) (Insights, error)
}

// Every error returned by a Fetcher satisfies errors.Is(err, ErrUnavailable).
var (
	ErrUnavailable       = errors.New(config.ErrInsightUnavail)
	ErrMissingCredential = fmt.Errorf("%w: %s", ErrUnavailable, config.ErrMissingCredential)
	ErrEmptyResponse     = fmt.Errorf("%w: %s", ErrUnavailable, config.ErrEmptyResponse)
	ErrMalformedResponse = fmt.Errorf("%w: %s", ErrUnavailable, config.ErrMalformedResponse)
)

// unavailable tags a transport or SDK failure.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Parse decodes the model's text output. Some models wrap JSON in a
// markdown code fence even when asked for raw JSON; the fence is stripped.
func Parse(text string) (Insights, error) {
	text = stripFence(strings.TrimSpace(text))
	if text == "" {
		return Insights{}, ErrEmptyResponse
	}

	var out Insights
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Insights{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	out.HistoricalFact = strings.TrimSpace(out.HistoricalFact)
	out.InspirationalQuote = strings.TrimSpace(out.InspirationalQuote)

	switch {
	case out.HistoricalFact == "":
		return Insights{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, config.FieldHistoricalFact)
	case out.InspirationalQuote == "":
		return Insights{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, config.FieldInspirationalQuote)
	}
	return out, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
