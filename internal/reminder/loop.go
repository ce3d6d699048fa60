package reminder

import (
	"context"
	"time"

	"github.com/theirongolddev/hidralife/internal/state"

	"go.uber.org/zap"
)

// DefaultTick is how often the loop re-evaluates the rule.
const DefaultTick = time.Minute

// LoadFunc returns a fresh copy of the persisted state.
type LoadFunc func() (*state.State, error)

// Result describes one evaluation of the loop.
type Result struct {
	At       time.Time
	State    *state.State
	Enabled  bool
	Notified bool
	Err      error
}

// Loop periodically reloads state and fires reminders when due. There is no
// debounce: every qualifying tick notifies.
type Loop struct {
	load     LoadFunc
	notifier Notifier
	vis      Visibility
	tick     time.Duration
	now      func() time.Time
	logger   *zap.Logger
	observe  func(Result)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithTick sets the evaluation period.
func WithTick(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.tick = d
		}
	}
}

// WithVisibility sets the visibility probe. The default is AlwaysHidden.
func WithVisibility(v Visibility) LoopOption {
	return func(l *Loop) { l.vis = v }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// WithObserver registers fn to receive every tick's Result.
func WithObserver(fn func(Result)) LoopOption {
	return func(l *Loop) { l.observe = fn }
}

// NewLoop returns a Loop reading state with load and delivering through n.
func NewLoop(load LoadFunc, n Notifier, opts ...LoopOption) *Loop {
	l := &Loop{
		load:     load,
		notifier: n,
		vis:      AlwaysHidden{},
		tick:     DefaultTick,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Run evaluates the rule every tick until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.logger.Debug("reminder loop started", zap.Duration("tick", l.tick))
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("reminder loop stopped")
			return nil
		case <-ticker.C:
			l.Tick(ctx)
		}
	}
}

// Tick runs a single evaluation.
func (l *Loop) Tick(ctx context.Context) Result {
	res := l.evaluate(ctx)
	if l.observe != nil {
		l.observe(res)
	}
	return res
}

func (l *Loop) evaluate(ctx context.Context) Result {
	res := Result{At: l.now()}

	st, err := l.load()
	if err != nil {
		l.logger.Warn("reminder: loading state failed", zap.Error(err))
		res.Err = err
		return res
	}
	res.State = st
	res.Enabled = st.Settings.NotificationsEnabled
	if !res.Enabled {
		return res
	}

	last := st.LastLog()
	interval := Interval(st.Settings.ReminderInterval)
	if !ShouldNotify(last, res.At, interval, l.vis.Hidden()) {
		return res
	}

	if err := l.notifier.Notify(ctx, Reminder(res.At)); err != nil {
		l.logger.Warn("reminder: notify failed", zap.Error(err))
		res.Err = err
		return res
	}
	l.logger.Debug("reminder sent", zap.Time("at", res.At))
	res.Notified = true
	return res
}
