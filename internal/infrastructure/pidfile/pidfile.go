package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/andrescamacho/research-queue/internal/domain/shared"
)

// PIDFile guards a save slot so only one process writes it at a time
type PIDFile struct {
	path      string
	sessionID string
}

// New creates a new PIDFile manager for a session
func New(path, sessionID string) *PIDFile {
	return &PIDFile{path: path, sessionID: sessionID}
}

// Path returns the lock file location
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire attempts to acquire the lock.
// Returns *shared.SessionLockedError if another live process holds it.
func (p *PIDFile) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	if data, err := os.ReadFile(p.path); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		switch {
		case convErr != nil:
			// Invalid PID file - remove it and continue
			_ = os.Remove(p.path)
		case pid == os.Getpid():
			return nil
		case isProcessRunning(pid):
			return shared.NewSessionLockedError(p.sessionID, pid)
		default:
			// Process is dead - remove stale PID file
			_ = os.Remove(p.path)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing PID file: %w", err)
	}

	file, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			// Lost a race with another process starting at the same time
			return shared.NewSessionLockedError(p.sessionID, p.holder())
		}
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}

	return nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) holder() int {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}
	pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return pid
}

// isProcessRunning checks if a process with the given PID is running
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix systems, FindProcess always succeeds.
	// Signal 0 checks existence without delivering anything.
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.EPERM) {
		// Process exists but we don't have permission (still running)
		return true
	}

	return false
}
