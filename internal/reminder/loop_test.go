package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu  sync.Mutex
	got []Notification
	err error
}

func (r *recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, n)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

type visible bool

func (v visible) Hidden() bool { return !bool(v) }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedState(enabled bool, lastAgo time.Duration) LoadFunc {
	return func() (*state.State, error) {
		st := state.New()
		st.Settings.NotificationsEnabled = enabled
		st.Settings.ReminderInterval = 30
		if lastAgo > 0 {
			st.Logs = append(st.Logs, model.WaterLog{ID: "a", Amount: 350, Timestamp: testNow.Add(-lastAgo).UnixMilli()})
		}
		return st, nil
	}
}

func clock() time.Time { return testNow }

func TestLoop_SilentWhenDisabled(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(false, 0), rec, WithClock(clock))

	for range 3 {
		res := l.Tick(context.Background())
		assert.False(t, res.Enabled)
		assert.False(t, res.Notified)
	}
	assert.Equal(t, 0, rec.count())
}

func TestLoop_FiresOnEveryQualifyingTick(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(true, 45*time.Minute), rec, WithClock(clock))

	for range 3 {
		assert.True(t, l.Tick(context.Background()).Notified)
	}
	require.Equal(t, 3, rec.count())
	assert.Equal(t, ReminderTitle, rec.got[0].Title)
	assert.Equal(t, testNow, rec.got[0].At)
}

func TestLoop_NoLogsNotifies(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(true, 0), rec, WithClock(clock))

	assert.True(t, l.Tick(context.Background()).Notified)
}

func TestLoop_RecentLogSuppresses(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(true, 5*time.Minute), rec, WithClock(clock))

	assert.False(t, l.Tick(context.Background()).Notified)
	assert.Equal(t, 0, rec.count())
}

func TestLoop_VisibleSuppresses(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(true, 2*time.Hour), rec, WithClock(clock), WithVisibility(visible(true)))

	assert.False(t, l.Tick(context.Background()).Notified)
}

func TestLoop_ReloadsStateEachTick(t *testing.T) {
	rec := &recorder{}
	enabled := false
	load := func() (*state.State, error) {
		st := state.New()
		st.Settings.NotificationsEnabled = enabled
		return st, nil
	}
	l := NewLoop(load, rec, WithClock(clock))

	l.Tick(context.Background())
	enabled = true
	l.Tick(context.Background())

	assert.Equal(t, 1, rec.count())
}

func TestLoop_LoadAndNotifyErrors(t *testing.T) {
	boom := errors.New("boom")

	l := NewLoop(func() (*state.State, error) { return nil, boom }, &recorder{}, WithClock(clock))
	res := l.Tick(context.Background())
	assert.ErrorIs(t, res.Err, boom)
	assert.Nil(t, res.State)

	rec := &recorder{err: boom}
	l = NewLoop(fixedState(true, 0), rec, WithClock(clock))
	res = l.Tick(context.Background())
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, res.Notified)
}

func TestLoop_ObserverSeesResults(t *testing.T) {
	var seen []Result
	l := NewLoop(fixedState(true, 0), &recorder{}, WithClock(clock),
		WithObserver(func(r Result) { seen = append(seen, r) }))

	l.Tick(context.Background())
	require.Len(t, seen, 1)
	assert.True(t, seen[0].Notified)
	assert.NotNil(t, seen[0].State)
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	rec := &recorder{}
	l := NewLoop(fixedState(true, 0), rec, WithTick(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
