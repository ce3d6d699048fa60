package cmd

import (
	"fmt"

	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagHistoryDays int
	flagHistoryFill bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent daily totals",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryDays, "days", "n", 0, "Number of days to show (default from config)")
	historyCmd.Flags().BoolVar(&flagHistoryFill, "fill", false, "Include days with no drinks")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	days := flagHistoryDays
	if days <= 0 {
		days = appCfg.General.DefaultDays
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var stats []model.DailyStats
	if flagHistoryFill {
		stats = s.tracker.Window(days)
	} else {
		stats = s.tracker.History(days)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  last %d days", days)))
	fmt.Println()
	fmt.Print(cli.RenderHistoryChart(stats, 30))
	if len(stats) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(historyTable(stats)))

	met := 0
	totals := make([]float64, len(stats))
	for i, d := range stats {
		if d.GoalMet() {
			met++
		}
		totals[i] = float64(d.Total)
	}
	fmt.Println()
	fmt.Println(cli.RenderLabel("Trend", cli.RenderSparkline(totals)))
	fmt.Println(cli.RenderLabel("Goal met", fmt.Sprintf("%d of %d days", met, len(stats))))
	fmt.Println()
	return nil
}

func historyTable(stats []model.DailyStats) cli.Table {
	t := cli.Table{
		Headers: []string{"Date", "Day", "Total", "Goal", "%"},
	}
	for _, d := range stats {
		pct := "-"
		if d.Goal > 0 {
			pct = cli.FormatPercent(d.Total * 100 / d.Goal)
		}
		t.Rows = append(t.Rows, []string{
			d.Date,
			cli.FormatDayKey(d.Date),
			cli.FormatML(d.Total),
			cli.FormatML(d.Goal),
			pct,
		})
	}
	return t
}
