package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/hydration"
	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or edit the daily goal and reminders",
	Long: "Without a subcommand, opens an interactive form on a terminal and\n" +
		"prints the current settings otherwise.",
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGoalCmd = &cobra.Command{
	Use:   "goal <ml>",
	Short: fmt.Sprintf("Set the daily goal (%d-%d ml)", model.MinDailyGoal, model.MaxDailyGoal),
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGoal,
}

var settingsIntervalCmd = &cobra.Command{
	Use:   "interval <minutes>",
	Short: "Set the reminder interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsInterval,
}

var settingsNotifyCmd = &cobra.Command{
	Use:       "notify on|off",
	Short:     "Turn reminder notifications on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsNotify,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsGoalCmd, settingsIntervalCmd, settingsNotifyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return runSettingsShow(cmd, args)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	v := tui.NewSettingsValues(s.tracker.Settings())
	if err := tui.SettingsForm(v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	enabledNow, err := v.Apply(s.tracker)
	if err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	info("%s\n", cli.RenderSuccess("Settings saved"))
	if enabledNow {
		sendEnabled(cmd)
	}
	return nil
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	st := s.tracker.Settings()
	notify := "off"
	if st.NotificationsEnabled {
		notify = "on"
	}
	fmt.Println()
	fmt.Println(cli.RenderLabel("Daily goal", cli.FormatML(st.DailyGoal)))
	fmt.Println(cli.RenderLabel("Interval", fmt.Sprintf("%d min", st.ReminderInterval)))
	fmt.Println(cli.RenderLabel("Reminders", notify))
	fmt.Println()
	return nil
}

func runSettingsGoal(_ *cobra.Command, args []string) error {
	ml, err := strconv.Atoi(args[0])
	if err != nil {
		return hydration.ErrInvalidGoal
	}
	return updateSettings(func(tr *hydration.Tracker) error {
		return tr.SetGoal(ml)
	}, fmt.Sprintf("Daily goal set to %s", cli.FormatML(ml)))
}

func runSettingsInterval(_ *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return hydration.ErrInvalidInterval
	}
	return updateSettings(func(tr *hydration.Tracker) error {
		return tr.SetReminderInterval(minutes)
	}, fmt.Sprintf("Reminder interval set to %d min", minutes))
}

func runSettingsNotify(cmd *cobra.Command, args []string) error {
	on := args[0] == "on"
	var wasOn bool
	err := updateSettings(func(tr *hydration.Tracker) error {
		wasOn = tr.Settings().NotificationsEnabled
		tr.SetNotifications(on)
		return nil
	}, "Reminders "+args[0])
	if err != nil {
		return err
	}
	if on && !wasOn {
		sendEnabled(cmd)
	}
	return nil
}

func updateSettings(apply func(*hydration.Tracker) error, done string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := apply(s.tracker); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	info("%s\n", cli.RenderSuccess(done))
	return nil
}

// sendEnabled shows the confirmation notification when the desktop allows it.
func sendEnabled(cmd *cobra.Command) {
	n := desktopNotifier()
	if n == nil {
		fmt.Println(cli.RenderWarning("Desktop notifications are unavailable; reminders will only reach the daemon log."))
		return
	}
	if err := n.Notify(cmd.Context(), reminder.Enabled(time.Now())); err != nil {
		fmt.Println(cli.RenderWarning("Could not show a notification: " + err.Error()))
	}
}
