package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/hydration"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's intake against the goal",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	printStatus(s.tracker, time.Now())
	return nil
}

func printStatus(tr *hydration.Tracker, now time.Time) {
	intake, goal := tr.Intake(), tr.Goal()
	settings := tr.Settings()

	fmt.Println()
	fmt.Println(cli.RenderTitle("HIDRALIFE  " + now.Format("Mon Jan 2")))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderProgressBar(intake, goal, 30))

	remaining := max(0, goal-intake)
	lastSip := "no drinks yet"
	if last := tr.LastLog(); last != nil {
		lastSip = cli.FormatAgo(last.Time(), now)
	}
	reminders := "off"
	if settings.NotificationsEnabled {
		reminders = fmt.Sprintf("every %d min", settings.ReminderInterval)
	}

	fmt.Println(cli.RenderLabel("Progress", cli.FormatPercent(tr.Percent())))
	fmt.Println(cli.RenderLabel("Remaining", cli.FormatML(remaining)))
	fmt.Println(cli.RenderLabel("Drinks", strconv.Itoa(len(tr.TodayLogs()))))
	fmt.Println(cli.RenderLabel("Last sip", lastSip))
	fmt.Println(cli.RenderLabel("Reminders", reminders))

	if intake >= goal && goal > 0 {
		fmt.Println()
		fmt.Println(cli.RenderSuccess("Daily goal reached!"))
	}
	fmt.Println()
}
