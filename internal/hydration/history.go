package hydration

import (
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
)

// History returns the last n stats entries in stored order (oldest first).
func (t *Tracker) History(n int) []model.DailyStats {
	stats := t.st.Stats
	if n > 0 && len(stats) > n {
		stats = stats[len(stats)-n:]
	}
	out := make([]model.DailyStats, len(stats))
	copy(out, stats)
	return out
}

// Window returns exactly days entries ending today, oldest first, with
// zero-total entries for days that have no stats.
func (t *Tracker) Window(days int) []model.DailyStats {
	if days < 1 {
		return nil
	}

	byDate := make(map[string]model.DailyStats, len(t.st.Stats))
	for _, s := range t.st.Stats {
		byDate[s.Date] = s
	}

	now := t.now().In(t.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, t.loc).AddDate(0, 0, -(days - 1))

	out := make([]model.DailyStats, 0, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format(DayLayout)
		if s, ok := byDate[key]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, model.DailyStats{Date: key})
	}
	return out
}

// ParseDay parses a day key in loc.
func ParseDay(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, loc)
}
