package reminder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"go.uber.org/zap"
)

// ErrNoDesktop indicates no desktop notification command is installed.
var ErrNoDesktop = errors.New("reminder: desktop notifications unavailable")

// Notifier delivers a Notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// DesktopNotifier shows notifications with notify-send on Linux and
// osascript on macOS.
type DesktopNotifier struct {
	bin string
}

// NewDesktopNotifier locates the platform notification command.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	name := "notify-send"
	if runtime.GOOS == "darwin" {
		name = "osascript"
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrNoDesktop, name)
	}
	return &DesktopNotifier{bin: bin}, nil
}

// Notify implements Notifier.
func (d *DesktopNotifier) Notify(ctx context.Context, n Notification) error {
	//nolint:gosec // bin comes from LookPath, arguments are fixed texts
	cmd := exec.CommandContext(ctx, d.bin, desktopArgs(runtime.GOOS, n)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("desktop notify: %w: %s", err, out)
	}
	return nil
}

func desktopArgs(goos string, n Notification) []string {
	if goos == "darwin" {
		script := "display notification " + strconv.Quote(n.Body) + " with title " + strconv.Quote(n.Title)
		return []string{"-e", script}
	}
	return []string{"--app-name=hidralife", "--icon=dialog-information", n.Title, n.Body}
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, n Notification) error {
	l.Logger.Info(n.Title,
		zap.String("kind", n.Kind),
		zap.String("body", n.Body),
		zap.Time("at", n.At),
	)
	return nil
}

// MultiNotifier fans a notification out to every member. All members are
// tried; their errors are joined.
type MultiNotifier []Notifier

// Notify implements Notifier.
func (m MultiNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
