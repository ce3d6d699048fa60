package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
)

func TestFormatML(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 ml"},
		{350, "350 ml"},
		{1250, "1,250 ml"},
		{12000, "12,000 ml"},
	}
	for _, tt := range tests {
		if got := FormatML(tt.in); got != tt.want {
			t.Fatalf("FormatML(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLiters(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{2500, "2.5 L"},
		{1250, "1.25 L"},
		{2000, "2 L"},
		{0, "0 L"},
	}
	for _, tt := range tests {
		if got := FormatLiters(tt.in); got != tt.want {
			t.Fatalf("FormatLiters(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1500); got != "-1,500" {
		t.Fatalf("FormatNumber negative = %q", got)
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{20 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{80 * time.Minute, "1h 20m ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Fatalf("FormatAgo(%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestFormatDayKey(t *testing.T) {
	if got := FormatDayKey("2026-03-14"); got != "Sat" {
		t.Fatalf("FormatDayKey = %q, want Sat", got)
	}
	if got := FormatDayKey("garbage"); got != "???" {
		t.Fatalf("FormatDayKey(garbage) = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(500, 2000, 8)
	if !strings.Contains(out, "██░░░░░░") {
		t.Fatalf("bar not a quarter full: %q", out)
	}
	if !strings.Contains(out, "500 / 2,000 ml") {
		t.Fatalf("missing totals: %q", out)
	}

	over := RenderProgressBar(3000, 2000, 4)
	if !strings.Contains(over, "████") || strings.Contains(over, "░") {
		t.Fatalf("overflow should clamp to full: %q", over)
	}

	if RenderProgressBar(1, 0, 10) != "" {
		t.Fatal("zero goal should render nothing")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Day", "Total"},
		Rows:    [][]string{{"Mon", "1,200 ml"}, {"---"}, {"Tue", "900 ml"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table lines = %d, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "1,200 ml") || !strings.Contains(out, "  900 ml") {
		t.Fatalf("numeric column not right-aligned:\n%s", out)
	}
}

func TestRenderHistoryChart(t *testing.T) {
	out := RenderHistoryChart([]model.DailyStats{
		{Date: "2026-03-13", Total: 2000, Goal: 2000},
		{Date: "2026-03-14", Total: 1000, Goal: 2000},
	}, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("chart lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Fri") || !strings.Contains(lines[0], strings.Repeat("█", 10)) {
		t.Fatalf("full day row wrong: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Sat") || strings.Contains(lines[1], strings.Repeat("█", 6)) {
		t.Fatalf("half day row wrong: %q", lines[1])
	}

	if !strings.Contains(RenderHistoryChart(nil, 10), "No history yet.") {
		t.Fatal("empty chart should say so")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7}); got != "▁█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
}
