package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/hidralife/internal/config"
	"github.com/theirongolddev/hidralife/internal/hydration"
	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SettingsValues backs the settings form.
type SettingsValues struct {
	Goal          int
	Interval      string
	Notifications bool
}

// NewSettingsValues seeds form values from s.
func NewSettingsValues(s model.UserSettings) *SettingsValues {
	return &SettingsValues{
		Goal:          s.DailyGoal,
		Interval:      strconv.Itoa(s.ReminderInterval),
		Notifications: s.NotificationsEnabled,
	}
}

// Apply writes the values through tr. It reports whether notifications went
// from off to on.
func (v *SettingsValues) Apply(tr *hydration.Tracker) (bool, error) {
	wasEnabled := tr.Settings().NotificationsEnabled

	interval, err := strconv.Atoi(strings.TrimSpace(v.Interval))
	if err != nil {
		return false, hydration.ErrInvalidInterval
	}
	if err := tr.SetGoal(v.Goal); err != nil {
		return false, err
	}
	if err := tr.SetReminderInterval(interval); err != nil {
		return false, err
	}
	tr.SetNotifications(v.Notifications)

	return v.Notifications && !wasEnabled, nil
}

func goalOptions() []huh.Option[int] {
	var opts []huh.Option[int]
	for g := model.MinDailyGoal; g <= model.MaxDailyGoal; g += model.DailyGoalStep {
		opts = append(opts, huh.NewOption(strconv.Itoa(g)+" ml", g))
	}
	return opts
}

func validateInterval(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < model.MinReminderInterval {
		return errors.New("enter a whole number of minutes (at least 1)")
	}
	return nil
}

// SettingsForm returns the hydration settings form bound to v.
func SettingsForm(v *SettingsValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Daily goal").
				Description("How much water you aim to drink each day.").
				Options(goalOptions()...).
				Height(8).
				Value(&v.Goal),
			huh.NewInput().
				Title("Reminder interval (minutes)").
				Placeholder("60").
				Value(&v.Interval).
				Validate(validateInterval),
			huh.NewConfirm().
				Title("Reminder notifications").
				Affirmative("On").
				Negative("Off").
				Value(&v.Notifications),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

// SetupValues backs the first-run configuration wizard.
type SetupValues struct {
	Provider string
	Model    string
	APIKey   string
	Endpoint string
	Language string
	Theme    string
}

// NewSetupValues seeds wizard values from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Provider: cfg.Advice.Provider,
		Model:    cfg.Advice.Model,
		APIKey:   cfg.Advice.APIKey,
		Endpoint: cfg.Advice.Endpoint,
		Language: cfg.Advice.Language,
		Theme:    cfg.Appearance.Theme,
	}
}

// Apply copies the wizard values into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	cfg.Advice.Provider = v.Provider
	cfg.Advice.Model = strings.TrimSpace(v.Model)
	cfg.Advice.APIKey = strings.TrimSpace(v.APIKey)
	cfg.Advice.Endpoint = strings.TrimSpace(v.Endpoint)
	if lang := strings.TrimSpace(v.Language); lang != "" {
		cfg.Advice.Language = lang
	}
	cfg.Appearance.Theme = v.Theme
}

// SetupForm returns the configuration wizard bound to v.
func SetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Advice provider").
				Description("Where hydration tips come from.").
				Options(
					huh.NewOption("Gemini (Google AI)", config.ProviderGemini),
					huh.NewOption("Ollama (local)", config.ProviderOllama),
					huh.NewOption("Built-in tips (offline)", config.ProviderStatic),
				).
				Value(&v.Provider),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				Description("Leave blank to use GEMINI_API_KEY from the environment.").
				EchoMode(huh.EchoModePassword).
				Value(&v.APIKey),
			huh.NewInput().
				Title("Model").
				Placeholder("gemini-2.5-flash").
				Value(&v.Model),
		).WithHideFunc(func() bool { return v.Provider != config.ProviderGemini }),
		huh.NewGroup(
			huh.NewInput().
				Title("Ollama endpoint").
				Placeholder("http://localhost:11434").
				Value(&v.Endpoint),
			huh.NewInput().
				Title("Model").
				Placeholder("llama3.2").
				Value(&v.Model),
		).WithHideFunc(func() bool { return v.Provider != config.ProviderOllama }),
		huh.NewGroup(
			huh.NewInput().
				Title("Advice language").
				Placeholder("English").
				Value(&v.Language),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeBase16())
}
