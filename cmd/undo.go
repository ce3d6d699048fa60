package cmd

import (
	"fmt"

	"github.com/theirongolddev/hidralife/internal/cli"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the last drink logged today",
	Args:  cobra.NoArgs,
	RunE:  runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	removed, ok := s.tracker.UndoLastLog()
	if !ok {
		info("%s\n", cli.RenderWarning("Nothing to undo today."))
		return nil
	}
	if err := s.save(); err != nil {
		return err
	}

	info("%s\n", cli.RenderSuccess(fmt.Sprintf("Removed %s logged at %s",
		cli.FormatML(removed.Amount), removed.Time().Format("15:04"))))
	info("  %s\n", cli.RenderProgressBar(s.tracker.Intake(), s.tracker.Goal(), 30))
	return nil
}
