// Package hydration implements the intake accumulator: adding and undoing
// water logs and keeping the per-day stats table in step with them.
package hydration

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/state"

	"github.com/google/uuid"
)

// DayLayout is the calendar day key format.
const DayLayout = "2006-01-02"

var (
	// ErrInvalidAmount indicates a non-positive intake amount.
	ErrInvalidAmount = errors.New("hydration: amount must be positive")
	// ErrInvalidGoal indicates a daily goal outside the allowed range or step.
	ErrInvalidGoal = fmt.Errorf("hydration: daily goal must be %d-%d ml in steps of %d",
		model.MinDailyGoal, model.MaxDailyGoal, model.DailyGoalStep)
	// ErrInvalidInterval indicates a reminder interval below the minimum.
	ErrInvalidInterval = fmt.Errorf("hydration: reminder interval must be at least %d minute", model.MinReminderInterval)
)

// Tracker mutates a State. It is not safe for concurrent use; callers
// serialize access (one CLI invocation, or the dashboard update loop).
type Tracker struct {
	st  *state.State
	now func() time.Time
	loc *time.Location

	intake    int
	intakeDay string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the zone used for calendar day keys.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// New wraps st and derives today's intake from today's logs.
func New(st *state.State, opts ...Option) *Tracker {
	t := &Tracker{
		st:  st,
		now: time.Now,
		loc: time.Local,
	}
	for _, o := range opts {
		o(t)
	}
	t.recompute(t.today())
	return t
}

// State returns the underlying state for persistence.
func (t *Tracker) State() *state.State {
	return t.st
}

// Settings returns the current user settings.
func (t *Tracker) Settings() model.UserSettings {
	return t.st.Settings
}

// DayKey formats tm as a calendar day key in loc.
func DayKey(tm time.Time, loc *time.Location) string {
	return tm.In(loc).Format(DayLayout)
}

func (t *Tracker) today() string {
	return DayKey(t.now(), t.loc)
}

func (t *Tracker) dayOf(l model.WaterLog) string {
	return DayKey(l.Time(), t.loc)
}

// recompute resets the running intake to the sum of day's logs.
func (t *Tracker) recompute(day string) {
	t.intake = t.sumDay(day)
	t.intakeDay = day
}

func (t *Tracker) sumDay(day string) int {
	total := 0
	for _, l := range t.st.Logs {
		if t.dayOf(l) == day {
			total += l.Amount
		}
	}
	return total
}

// rollover starts a fresh running total when the calendar day changed.
func (t *Tracker) rollover() string {
	day := t.today()
	if day != t.intakeDay {
		t.recompute(day)
	}
	return day
}

// Intake returns today's running intake in milliliters.
func (t *Tracker) Intake() int {
	t.rollover()
	return t.intake
}

// Goal returns the configured daily goal.
func (t *Tracker) Goal() int {
	return t.st.Settings.DailyGoal
}

// Progress returns intake/goal clamped to [0, 1].
func (t *Tracker) Progress() float64 {
	goal := t.Goal()
	if goal <= 0 {
		return 0
	}
	p := float64(t.Intake()) / float64(goal)
	return math.Min(1, math.Max(0, p))
}

// Percent returns today's rounded, unclamped percentage of the goal.
func (t *Tracker) Percent() int {
	return Percent(t.Intake(), t.Goal())
}

// Percent returns the rounded, unclamped percentage of the goal reached.
func Percent(current, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(goal) * 100))
}

// AddWater records an intake of amount milliliters now.
func (t *Tracker) AddWater(amount int) (model.WaterLog, error) {
	if amount <= 0 {
		return model.WaterLog{}, ErrInvalidAmount
	}

	day := t.rollover()
	entry := model.WaterLog{
		ID:        uuid.NewString(),
		Amount:    amount,
		Timestamp: t.now().UnixMilli(),
	}
	t.st.Logs = append(t.st.Logs, entry)
	t.intake += amount

	goal := t.st.Settings.DailyGoal
	if i := t.statIndex(day); i >= 0 {
		t.st.Stats[i].Total = t.intake
		t.st.Stats[i].Goal = goal
	} else {
		t.st.Stats = append(t.st.Stats, model.DailyStats{Date: day, Total: t.intake, Goal: goal})
	}

	return entry, nil
}

// UndoLastLog removes the most recent log when it belongs to today.
// It returns the removed log and true, or false when nothing was undone.
// Today's stats total is recomputed from the remaining logs rather than
// adjusted from the running intake.
func (t *Tracker) UndoLastLog() (model.WaterLog, bool) {
	day := t.rollover()

	n := len(t.st.Logs)
	if n == 0 {
		return model.WaterLog{}, false
	}
	last := t.st.Logs[n-1]
	if t.dayOf(last) != day {
		return model.WaterLog{}, false
	}

	t.st.Logs = t.st.Logs[:n-1]
	t.intake = max(0, t.intake-last.Amount)

	if i := t.statIndex(day); i >= 0 {
		t.st.Stats[i].Total = t.sumDay(day)
	}

	return last, true
}

func (t *Tracker) statIndex(day string) int {
	for i, s := range t.st.Stats {
		if s.Date == day {
			return i
		}
	}
	return -1
}

// LastLog returns the most recent log, or nil when there are none.
func (t *Tracker) LastLog() *model.WaterLog {
	return t.st.LastLog()
}

// TodayLogs returns today's logs in insertion order.
func (t *Tracker) TodayLogs() []model.WaterLog {
	day := t.today()
	var out []model.WaterLog
	for _, l := range t.st.Logs {
		if t.dayOf(l) == day {
			out = append(out, l)
		}
	}
	return out
}

// SetGoal changes the daily goal. Existing stats keep the goal they were
// recorded with until the next intake of that day.
func (t *Tracker) SetGoal(ml int) error {
	if ml < model.MinDailyGoal || ml > model.MaxDailyGoal || ml%model.DailyGoalStep != 0 {
		return ErrInvalidGoal
	}
	t.st.Settings.DailyGoal = ml
	return nil
}

// SetReminderInterval changes the reminder interval in minutes.
func (t *Tracker) SetReminderInterval(minutes int) error {
	if minutes < model.MinReminderInterval {
		return ErrInvalidInterval
	}
	t.st.Settings.ReminderInterval = minutes
	return nil
}

// SetNotifications toggles reminders.
func (t *Tracker) SetNotifications(enabled bool) {
	t.st.Settings.NotificationsEnabled = enabled
}
