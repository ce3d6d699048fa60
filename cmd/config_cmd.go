package cmd

import (
	"fmt"

	"github.com/theirongolddev/hidralife/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", dataDir())
	fmt.Printf("    Default days:   %d\n", cfg.General.DefaultDays)
	fmt.Println()

	fmt.Println("  [Advice]")
	fmt.Printf("    Provider: %s\n", config.GetProvider(cfg))
	if cfg.Advice.Model != "" {
		fmt.Printf("    Model:    %s\n", cfg.Advice.Model)
	}
	switch config.GetProvider(cfg) {
	case config.ProviderGemini:
		if key := config.GetAPIKey(cfg); key != "" {
			fmt.Printf("    API key:  %s\n", maskAPIKey(key))
		} else {
			fmt.Println("    API key:  not configured")
		}
	case config.ProviderOllama:
		fmt.Printf("    Endpoint: %s\n", cfg.Advice.Endpoint)
	}
	fmt.Printf("    Language: %s\n", cfg.Advice.Language)
	fmt.Printf("    Timeout:  %s\n", cfg.Advice.Timeout.Duration)
	fmt.Println()

	fmt.Println("  [Reminder]")
	fmt.Printf("    Poll interval: %s\n", cfg.Reminder.PollInterval.Duration)
	fmt.Printf("    Desktop:       %v\n", cfg.Reminder.Desktop)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Goal and reminders are managed with `hidralife settings`.")
	fmt.Println("  Run `hidralife setup` to reconfigure.")
	return nil
}
