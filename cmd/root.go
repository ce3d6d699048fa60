// Package cmd implements the hidralife CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/hidralife/internal/advice"
	"github.com/theirongolddev/hidralife/internal/config"
	"github.com/theirongolddev/hidralife/internal/hydration"
	"github.com/theirongolddev/hidralife/internal/logging"
	"github.com/theirongolddev/hidralife/internal/reminder"
	"github.com/theirongolddev/hidralife/internal/state"
	"github.com/theirongolddev/hidralife/internal/store"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir string
	flagVerbose bool
	flagQuiet   bool
	flagLogFile string
)

var (
	appCfg config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hidralife",
	Short: "Track your daily water intake",
	Long: "hidralife logs the water you drink, keeps a daily goal, reminds you to\n" +
		"drink and shares a short hydration tip.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	RunE:              runDefault,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "State directory (default $XDG_DATA_HOME/hidralife)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write JSON logs to this file")
}

func initRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	appCfg = cfg

	l, lerr := logging.New(logging.Options{Verbose: flagVerbose, File: flagLogFile})
	if lerr != nil {
		return fmt.Errorf("initializing logger: %w", lerr)
	}
	logger = l

	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.String("path", config.Path()), zap.Error(err))
	}
	return nil
}

// runDefault opens the dashboard on a terminal and prints status otherwise.
func runDefault(cmd *cobra.Command, args []string) error {
	if isInteractive() {
		return runTUI(cmd, args)
	}
	return runStatus(cmd, args)
}

func isInteractive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

func stdoutIsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.DataDir(appCfg)
}

// session is one load/mutate/save cycle against the state store.
type session struct {
	kv      *store.KV
	tracker *hydration.Tracker
}

func openSession() (*session, error) {
	path := config.StorePath(dataDir())
	kv, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening state store %s: %w", path, err)
	}

	st, err := state.Load(kv)
	if err != nil {
		_ = kv.Close()
		if errors.Is(err, state.ErrCorrupt) {
			return nil, fmt.Errorf("%w\n  Inspect it with `hidralife export --raw` and repair or remove %s", err, kv.Path())
		}
		return nil, err
	}

	logger.Debug("state loaded",
		zap.String("path", kv.Path()),
		zap.Int("logs", len(st.Logs)),
		zap.Int("stats", len(st.Stats)),
	)
	return &session{kv: kv, tracker: hydration.New(st)}, nil
}

func (s *session) save() error {
	return state.Save(s.kv, s.tracker.State())
}

func (s *session) Close() error {
	return s.kv.Close()
}

// newCoach builds the advice coach. A provider that cannot be built fails
// each request, so the coach answers with its error fallback.
func newCoach(ctx context.Context) *advice.Coach {
	gen, err := advice.NewGenerator(ctx, appCfg)
	if err != nil {
		logger.Warn("advice provider unavailable",
			zap.String("provider", config.GetProvider(appCfg)), zap.Error(err))
		gen = advice.Unavailable(err)
	}
	return advice.NewCoach(gen, appCfg.Advice.Language, logger)
}

// desktopNotifier returns the platform notifier, or nil when none exists.
func desktopNotifier() reminder.Notifier {
	n, err := reminder.NewDesktopNotifier()
	if err != nil {
		logger.Debug("desktop notifier unavailable", zap.Error(err))
		return nil
	}
	return n
}

func info(format string, a ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, a...)
}
