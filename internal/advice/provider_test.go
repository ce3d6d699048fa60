package advice

import (
	"context"
	"testing"

	"github.com/theirongolddev/hidralife/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_Static(t *testing.T) {
	t.Setenv("HIDRALIFE_ADVICE_PROVIDER", "")
	cfg := config.DefaultConfig()
	cfg.Advice.Provider = config.ProviderStatic

	gen, err := NewGenerator(context.Background(), cfg)
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), BuildPrompt(2000, 2000, "English"))
	require.NoError(t, err)
	assert.Equal(t, StaticTip(100), text)
}

func TestNewGenerator_Unknown(t *testing.T) {
	t.Setenv("HIDRALIFE_ADVICE_PROVIDER", "carrier-pigeon")

	_, err := NewGenerator(context.Background(), config.DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewGenerator_GeminiWithoutKey(t *testing.T) {
	t.Setenv("HIDRALIFE_ADVICE_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := NewGenerator(context.Background(), config.DefaultConfig())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewGenerator_OllamaDropsGeminiModel(t *testing.T) {
	t.Setenv("HIDRALIFE_ADVICE_PROVIDER", config.ProviderOllama)

	gen, err := NewGenerator(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestUnavailable_CoachFallsBackOnError(t *testing.T) {
	t.Setenv("HIDRALIFE_ADVICE_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := NewGenerator(context.Background(), config.DefaultConfig())
	require.Error(t, err)

	gen := Unavailable(err)
	_, genErr := gen.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, genErr, ErrUnauthorized)

	coach := NewCoach(gen, "English", nil)
	assert.Equal(t, FallbackOnError, coach.Advice(context.Background(), 500, 2000))
}
