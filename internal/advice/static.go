package advice

import (
	"context"
	"regexp"
	"strconv"
)

var percentRe = regexp.MustCompile(`(\d+)% of their daily goal`)

// Static is an offline Generator that picks a canned tip by progress band.
// It reads the percentage back out of the prompt built by BuildPrompt.
type Static struct{}

// Generate implements Generator.
func (Static) Generate(_ context.Context, prompt string) (string, error) {
	pct := 0
	if m := percentRe.FindStringSubmatch(prompt); m != nil {
		pct, _ = strconv.Atoi(m[1])
	}
	return StaticTip(pct), nil
}

// StaticTip returns the canned tip for a goal percentage.
func StaticTip(pct int) string {
	switch {
	case pct >= 100:
		return "Goal reached, great work! Keep sipping, but there's no need to overdo it. 🏆"
	case pct >= 80:
		return "Almost there! A couple more glasses and today's goal is yours. 🎉"
	case pct >= 50:
		return "Halfway done. Keep a glass nearby and keep the rhythm going! 💪"
	case pct > 0:
		return "Good start! Your body will thank you for another glass right now. 💧"
	default:
		return "Start your day with a glass of water, your body is waiting! 🚰"
	}
}
