package insight

import (
	"cmp"
	"context"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/tartampluch/go-agecalc/internal/config"
)

// OpenAIFetcher talks to any OpenAI-compatible chat completion endpoint
// (OpenAI, OpenRouter, a local server) in JSON mode.
type OpenAIFetcher struct {
	client *openai.Client // nil when no API key is configured
	model  string
	lang   string
}

// NewOpenAIFetcher builds the client once; see NewGeminiFetcher for the empty-key rule.
func NewOpenAIFetcher(opts Options) *OpenAIFetcher {
	f := &OpenAIFetcher{
		model: cmp.Or(opts.Model, config.DefaultOpenAIModel),
		lang:  opts.Lang,
	}
	if opts.APIKey == "" {
		return f
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	f.client = openai.NewClientWithConfig(cfg)
	return f
}

// FetchInsights implements Fetcher.
func (f *OpenAIFetcher) FetchInsights(ctx context.Context, birthYear, ageYears int) (Insights, error) {
	if f.client == nil {
		return Insights{}, ErrMissingCredential
	}

	log := slog.With(
		config.LogKeyComponent, config.CompInsight,
		config.LogKeyProvider, config.ProviderOpenAI,
		config.LogKeyModel, f.model,
	)
	log.Debug(config.MsgInsightStart, config.LogKeyYear, birthYear, config.LogKeyAge, ageYears)
	start := time.Now()

	p := promptsFor(f.lang)
	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.system},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(f.lang, birthYear, ageYears)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Insights{}, unavailable(err)
	}
	if len(resp.Choices) == 0 {
		return Insights{}, ErrEmptyResponse
	}

	out, err := Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return Insights{}, err
	}

	log.Info(config.MsgInsightOK, config.LogKeyDuration, time.Since(start).Milliseconds())
	return out, nil
}
