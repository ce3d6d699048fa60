package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/hidralife/internal/config"
	"github.com/theirongolddev/hidralife/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to hidralife!")
	fmt.Println()
	if config.Exists() {
		fmt.Printf("  Editing %s\n\n", config.Path())
	}

	v := tui.NewSetupValues(cfg)
	form := tui.SetupForm(v).WithAccessible(!isInteractive())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}
	v.Apply(&cfg)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	if cfg.Advice.Provider == config.ProviderGemini && config.GetAPIKey(cfg) != "" {
		fmt.Printf("  Gemini key: %s\n", maskAPIKey(config.GetAPIKey(cfg)))
	}
	fmt.Println()
	fmt.Println("  Log a drink with `hidralife add medium` or run `hidralife` for the dashboard.")
	fmt.Println()
	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
