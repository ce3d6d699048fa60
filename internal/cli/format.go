// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/hidralife/internal/hydration"
)

// FormatML formats milliliters with comma separators.
// e.g., 1250 -> "1,250 ml"
func FormatML(ml int) string {
	return FormatNumber(int64(ml)) + " ml"
}

// FormatLiters formats milliliters as liters with up to two decimals.
// e.g., 2500 -> "2.5 L", 1250 -> "1.25 L"
func FormatLiters(ml int) string {
	s := strconv.FormatFloat(float64(ml)/1000, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " L"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole percentage.
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatAgo formats the time elapsed since t.
// e.g., 30s -> "just now", 5m -> "5m ago", 80m -> "1h 20m ago"
func FormatAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}

	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60

	switch {
	case hours >= 24:
		return fmt.Sprintf("%dd ago", hours/24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm ago", hours, mins)
	default:
		return fmt.Sprintf("%dm ago", mins)
	}
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDayKey returns the weekday abbreviation for a YYYY-MM-DD key.
func FormatDayKey(key string) string {
	t, err := hydration.ParseDay(key, time.Local)
	if err != nil {
		return "???"
	}
	return FormatDayOfWeek(int(t.Weekday()))
}
