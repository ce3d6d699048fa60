// Package advice produces short motivational hydration tips from a
// pluggable text generation provider.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/hidralife/internal/hydration"

	"go.uber.org/zap"
)

// Fallback texts.
const (
	FallbackOnError = "Water is essential for life. Have a sip now! 💧"
	FallbackEmpty   = "Stay hydrated! 💧"
)

// Generator turns a prompt into text. Implementations talk to one provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Coach asks a Generator for one tip per call. It never fails: provider
// errors are logged and replaced with a fixed fallback.
type Coach struct {
	gen      Generator
	language string
	logger   *zap.Logger
}

// NewCoach returns a Coach. An empty language defaults to English.
func NewCoach(gen Generator, language string, logger *zap.Logger) *Coach {
	if language == "" {
		language = "English"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{gen: gen, language: language, logger: logger}
}

// Advice returns a tip for the given intake and goal in milliliters.
func (c *Coach) Advice(ctx context.Context, current, goal int) string {
	prompt := BuildPrompt(current, goal, c.language)

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("fetching hydration advice failed", zap.Error(err))
		return FallbackOnError
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// BuildPrompt renders the coaching prompt.
func BuildPrompt(current, goal int, language string) string {
	pct := hydration.Percent(current, goal)

	var b strings.Builder
	b.WriteString("You are a friendly, motivating health coach focused on hydration.\n")
	fmt.Fprintf(&b, "The user has drunk %dml today, which is %d%% of their daily goal of %dml.\n\n", current, pct, goal)
	fmt.Fprintf(&b, "Reply with one short sentence (20 words at most) in %s.\n", language)
	b.WriteString("If the percentage is low, motivate them to drink more.\n")
	b.WriteString("If they are close to the goal, congratulate them.\n")
	b.WriteString("If they passed the goal, praise the good work but remind them not to overdo it.\n")
	b.WriteString("You may include one emoji.\n")
	return b.String()
}
