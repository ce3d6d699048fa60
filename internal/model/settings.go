package model

// Settings bounds, mirroring the goal slider of the settings panel.
const (
	MinDailyGoal  = 1000
	MaxDailyGoal  = 5000
	DailyGoalStep = 100

	MinReminderInterval = 1
)

// UserSettings is the singleton user preference record.
type UserSettings struct {
	DailyGoal            int  `json:"dailyGoal" yaml:"dailyGoal"`
	ReminderInterval     int  `json:"reminderInterval" yaml:"reminderInterval"` // minutes
	NotificationsEnabled bool `json:"notificationsEnabled" yaml:"notificationsEnabled"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() UserSettings {
	return UserSettings{
		DailyGoal:            2500,
		ReminderInterval:     60,
		NotificationsEnabled: false,
	}
}
