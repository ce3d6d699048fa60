package advice

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/hidralife/internal/config"
)

// NewGenerator builds the Generator selected by cfg. The returned generator
// applies cfg.Advice.Timeout to each call.
func NewGenerator(ctx context.Context, cfg config.Config) (Generator, error) {
	var gen Generator

	switch provider := config.GetProvider(cfg); provider {
	case config.ProviderGemini:
		model := cfg.Advice.Model
		g, err := NewGemini(ctx, config.GetAPIKey(cfg), model)
		if err != nil {
			return nil, err
		}
		gen = g
	case config.ProviderOllama:
		model := cfg.Advice.Model
		if model == DefaultGeminiModel {
			model = ""
		}
		gen = NewOllama(cfg.Advice.Endpoint, model)
	case config.ProviderStatic:
		gen = Static{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	return WithTimeout(gen, cfg.Advice.Timeout.Duration), nil
}

// WithTimeout bounds each Generate call. A non-positive d returns gen unchanged.
func WithTimeout(gen Generator, d time.Duration) Generator {
	if d <= 0 {
		return gen
	}
	return GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return gen.Generate(ctx, prompt)
	})
}

// Unavailable returns a Generator that fails every call with err. It stands
// in for a provider that could not be built, so each request surfaces as a
// failed call and the Coach falls back.
func Unavailable(err error) Generator {
	return GeneratorFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}
