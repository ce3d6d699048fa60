package advice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestBuildPrompt_CarriesNumbers(t *testing.T) {
	p := BuildPrompt(1250, 2000, "Brazilian Portuguese")

	assert.Contains(t, p, "1250ml")
	assert.Contains(t, p, "63%")
	assert.Contains(t, p, "2000ml")
	assert.Contains(t, p, "Brazilian Portuguese")
	assert.Contains(t, p, "20 words")
}

func TestCoach_ReturnsGeneratedText(t *testing.T) {
	var gotPrompt string
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "  Keep going! 💧\n", nil
	})

	c := NewCoach(gen, "", zaptest.NewLogger(t))
	assert.Equal(t, "Keep going! 💧", c.Advice(context.Background(), 500, 2000))
	assert.Contains(t, gotPrompt, "25%")
	assert.Contains(t, gotPrompt, "English")
}

func TestCoach_FallbackOnError(t *testing.T) {
	calls := 0
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("boom")
	})

	c := NewCoach(gen, "English", nil)
	assert.Equal(t, FallbackOnError, c.Advice(context.Background(), 0, 2500))
	assert.Equal(t, 1, calls, "advice must not retry")
}

func TestCoach_FallbackOnEmpty(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return "   ", nil
	})

	c := NewCoach(gen, "English", nil)
	assert.Equal(t, FallbackEmpty, c.Advice(context.Background(), 100, 2500))
}

func TestCoach_ZeroGoal(t *testing.T) {
	c := NewCoach(Static{}, "English", nil)
	assert.Equal(t, StaticTip(0), c.Advice(context.Background(), 800, 0))
}
