package reminder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PresenceFileName is the dashboard presence file inside the data dir.
const PresenceFileName = "dashboard.pid"

// Visibility tells the loop whether the app is out of the user's sight.
type Visibility interface {
	Hidden() bool
}

// AlwaysHidden treats the app as never on screen.
type AlwaysHidden struct{}

// Hidden implements Visibility.
func (AlwaysHidden) Hidden() bool { return true }

// PresenceFile marks a running dashboard. The app counts as visible while the
// PID stored in the file is alive.
type PresenceFile struct {
	Path string
}

// NewPresenceFile returns the presence file for dataDir.
func NewPresenceFile(dataDir string) PresenceFile {
	return PresenceFile{Path: filepath.Join(dataDir, PresenceFileName)}
}

// Hidden implements Visibility.
func (p PresenceFile) Hidden() bool {
	pid, err := ReadPID(p.Path)
	if err != nil {
		return true
	}
	return !ProcessAlive(pid)
}

// Acquire records the current process as the visible dashboard.
func (p PresenceFile) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o750); err != nil {
		return fmt.Errorf("create presence directory: %w", err)
	}
	return WritePID(p.Path, os.Getpid())
}

// Release removes the presence file if it still belongs to this process.
func (p PresenceFile) Release() error {
	pid, err := ReadPID(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(p.Path)
}

// WritePID writes pid to path.
func WritePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

// ReadPID reads a PID file written by WritePID.
func ReadPID(path string) (int, error) {
	//nolint:gosec // pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

// ProcessAlive reports whether pid refers to a running process.
func ProcessAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
