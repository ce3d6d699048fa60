package hydration

import (
	"testing"
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/state"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_LastN(t *testing.T) {
	st := state.New()
	for i := 1; i <= 9; i++ {
		st.Stats = append(st.Stats, model.DailyStats{Date: time.Date(2026, 1, i, 0, 0, 0, 0, time.UTC).Format(DayLayout), Total: i})
	}
	tr := New(st, WithLocation(time.UTC))

	got := tr.History(7)
	require.Len(t, got, 7)
	assert.Equal(t, "2026-01-03", got[0].Date)
	assert.Equal(t, "2026-01-09", got[6].Date)

	got[0].Total = -1
	assert.Equal(t, 3, st.Stats[2].Total, "History must return a copy")

	assert.Len(t, tr.History(0), 9)
}

func TestWindow_ZeroFillsGaps(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	st := state.New()
	st.Stats = []model.DailyStats{
		{Date: "2026-03-01", Total: 100, Goal: 2000}, // outside window
		{Date: "2026-03-09", Total: 1800, Goal: 2000},
		{Date: "2026-03-14", Total: 2200, Goal: 2000},
	}
	tr := New(st, WithClock(clock.now), WithLocation(time.UTC))

	want := []model.DailyStats{
		{Date: "2026-03-08"},
		{Date: "2026-03-09", Total: 1800, Goal: 2000},
		{Date: "2026-03-10"},
		{Date: "2026-03-11"},
		{Date: "2026-03-12"},
		{Date: "2026-03-13"},
		{Date: "2026-03-14", Total: 2200, Goal: 2000},
	}
	if diff := cmp.Diff(want, tr.Window(7)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, tr.Window(0))
}

func TestParseDay_RoundTripsDayKey(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	tm := time.Date(2026, 3, 14, 23, 30, 0, 0, loc)

	day, err := ParseDay(DayKey(tm, loc), loc)
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, loc)), "got %v", day)

	_, err = ParseDay("14/03/2026", loc)
	assert.Error(t, err)
}
