package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/hidralife/internal/config"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce coalesces the burst of writes one sqlite commit produces.
const watchDebounce = 250 * time.Millisecond

// watch refreshes the snapshot after writes to the state database. Other
// files in DataDir, such as the daemon's own log, are ignored.
func (s *Service) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(s.cfg.DataDir); err != nil {
		return fmt.Errorf("watching %s: %w", s.cfg.DataDir, err)
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || !config.IsStoreFile(ev.Name) {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("daemon: watcher error", zap.Error(err))
		case <-timer.C:
			s.refresh()
		}
	}
}
