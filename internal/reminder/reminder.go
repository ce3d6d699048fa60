// Package reminder decides when to nudge the user to drink and delivers the
// nudge through a Notifier.
package reminder

import (
	"time"

	"github.com/theirongolddev/hidralife/internal/model"
)

// Notification texts.
const (
	ReminderTitle = "Time to drink water!"
	ReminderBody  = "It's been a while since your last sip. Stay hydrated! 💧"
	EnabledTitle  = "hidralife"
	EnabledBody   = "Notifications enabled! Let's drink water! 💧"
)

// Notification kinds.
const (
	KindReminder = "reminder"
	KindEnabled  = "enabled"
)

// Notification is a single message handed to a Notifier.
type Notification struct {
	Kind  string    `json:"kind"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

// Reminder returns the periodic drink reminder.
func Reminder(at time.Time) Notification {
	return Notification{Kind: KindReminder, Title: ReminderTitle, Body: ReminderBody, At: at}
}

// Enabled returns the confirmation sent when notifications are switched on.
func Enabled(at time.Time) Notification {
	return Notification{Kind: KindEnabled, Title: EnabledTitle, Body: EnabledBody, At: at}
}

// ShouldNotify reports whether a reminder is due: the app is hidden and
// either nothing was ever logged or the last log is older than interval.
func ShouldNotify(last *model.WaterLog, now time.Time, interval time.Duration, hidden bool) bool {
	if !hidden {
		return false
	}
	if last == nil {
		return true
	}
	return now.Sub(last.Time()) > interval
}

// Interval converts a settings value in minutes to a duration.
func Interval(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
