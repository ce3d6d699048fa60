package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/tui"
	"github.com/theirongolddev/hidralife/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive hydration dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor so background styling always emits ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	// While the dashboard runs, the daemon holds back reminders.
	presence := reminder.NewPresenceFile(dataDir())
	if err := presence.Acquire(); err != nil {
		logger.Warn("could not mark dashboard visible", zap.String("path", presence.Path), zap.Error(err))
	}
	defer func() { _ = presence.Release() }()

	var notifier reminder.Notifier = reminder.LogNotifier{Logger: logger}
	if appCfg.Reminder.Desktop {
		notifier = reminder.MultiNotifier{notifier, desktopNotifier()}
	}

	app, err := tui.NewApp(tui.Deps{
		Store:       s.kv,
		Coach:       newCoach(cmd.Context()),
		Notifier:    notifier,
		WatchDir:    dataDir(),
		HistoryDays: appCfg.General.DefaultDays,
		Logger:      logger,
		Now:         time.Now,
	}, s.tracker.State())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
