package insight

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tartampluch/go-agecalc/internal/config"
)

// Options selects and configures a provider.
type Options struct {
	Provider   string // config.ProviderGemini (default) or config.ProviderOpenAI
	APIKey     string
	Model      string // empty means the provider default
	BaseURL    string // empty means the public endpoint
	Lang       string // prompt language
	HTTPClient *http.Client
}

// OptionsFromEnv maps process configuration onto Options.
func OptionsFromEnv(e config.Env) Options {
	return Options{
		Provider: e.Provider,
		APIKey:   e.APIKey(),
		Model:    e.Model,
		BaseURL:  e.BaseURL,
		Lang:     e.Lang,
	}
}

// New returns the Fetcher for opts.Provider.
func New(ctx context.Context, opts Options) (Fetcher, error) {
	switch opts.Provider {
	case "", config.ProviderGemini:
		f, err := NewGeminiFetcher(ctx, opts)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.ProviderOpenAI:
		return NewOpenAIFetcher(opts), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrUnknownProvider, opts.Provider)
	}
}
