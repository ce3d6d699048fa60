package model

// DailyStats holds the aggregated intake for one calendar day.
// Date is the day key in YYYY-MM-DD form.
type DailyStats struct {
	Date  string `json:"date" yaml:"date"`
	Total int    `json:"total" yaml:"total"`
	Goal  int    `json:"goal" yaml:"goal"` // goal in force at the last update
}

// GoalMet reports whether the day's total reached its goal.
func (d DailyStats) GoalMet() bool {
	return d.Goal > 0 && d.Total >= d.Goal
}
