package insight

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-agecalc/internal/config"
	"google.golang.org/genai"
)

// GeminiFetcher queries the Gemini API with a JSON response schema.
type GeminiFetcher struct {
	client *genai.Client // nil when no API key is configured
	model  string
	lang   string
}

// NewGeminiFetcher builds the client once. An empty key is accepted: the
// fetcher then fails every call with ErrMissingCredential without dialing.
func NewGeminiFetcher(ctx context.Context, opts Options) (*GeminiFetcher, error) {
	f := &GeminiFetcher{
		model: cmp.Or(opts.Model, config.DefaultGeminiModel),
		lang:  opts.Lang,
	}
	if opts.APIKey == "" {
		return f, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrClientInit, err)
	}
	f.client = client
	return f, nil
}

// FetchInsights implements Fetcher.
func (f *GeminiFetcher) FetchInsights(ctx context.Context, birthYear, ageYears int) (Insights, error) {
	if f.client == nil {
		return Insights{}, ErrMissingCredential
	}

	log := slog.With(
		config.LogKeyComponent, config.CompInsight,
		config.LogKeyProvider, config.ProviderGemini,
		config.LogKeyModel, f.model,
	)
	log.Debug(config.MsgInsightStart, config.LogKeyYear, birthYear, config.LogKeyAge, ageYears)
	start := time.Now()

	resp, err := f.client.Models.GenerateContent(ctx, f.model,
		genai.Text(Prompt(f.lang, birthYear, ageYears)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: config.MimeJSON,
			ResponseSchema:   responseSchema(f.lang),
		})
	if err != nil {
		return Insights{}, unavailable(err)
	}

	out, err := Parse(resp.Text())
	if err != nil {
		return Insights{}, err
	}

	log.Info(config.MsgInsightOK, config.LogKeyDuration, time.Since(start).Milliseconds())
	return out, nil
}

// responseSchema requires both fields, with descriptions in the prompt language.
func responseSchema(lang string) *genai.Schema {
	p := promptsFor(lang)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			config.FieldHistoricalFact: {
				Type:        genai.TypeString,
				Description: p.factDesc,
			},
			config.FieldInspirationalQuote: {
				Type:        genai.TypeString,
				Description: p.quoteDesc,
			},
		},
		Required: []string{config.FieldHistoricalFact, config.FieldInspirationalQuote},
	}
}
