package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/hidralife/internal/cli"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Get a short hydration tip for today's progress",
	Args:  cobra.NoArgs,
	RunE:  runTip,
}

func init() {
	rootCmd.AddCommand(tipCmd)
}

func runTip(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	intake, goal := s.tracker.Intake(), s.tracker.Goal()
	_ = s.Close()

	start := time.Now()
	text := newCoach(cmd.Context()).Advice(cmd.Context(), intake, goal)
	logger.Debug("advice generated", zap.Duration("took", time.Since(start)))

	if !stdoutIsTTY() {
		fmt.Println(text)
		return nil
	}

	out, err := renderTip(text)
	if err != nil {
		logger.Debug("glamour render failed", zap.Error(err))
		fmt.Println(text)
		return nil
	}
	fmt.Print(out)
	fmt.Printf("  %s\n\n", cli.RenderProgressBar(intake, goal, 30))
	return nil
}

func renderTip(text string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(72))
	if err != nil {
		return "", err
	}
	return r.Render("> " + text)
}
