// Package debug provides optional file-based trace logging.
//
// When the HALCYON_DEBUG environment variable is set to a file path (or Init
// is called explicitly), trace messages are appended to that file. Otherwise
// logging is a no-op with near-zero cost.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
	tried   bool
)

// Init opens the trace log at the given path. An empty path disables logging.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	tried = true
	if path == "" {
		return nil
	}
	return open(path)
}

// open does the actual work. Caller must hold mu.
func open(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create trace log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open trace log: %w", err)
	}
	logFile = f
	return nil
}

// Close closes the trace log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logf writes a formatted message to the trace log with a timestamp.
// It is a no-op when no log file is configured.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		if tried {
			return
		}
		tried = true
		if path := os.Getenv("HALCYON_DEBUG"); path != "" {
			open(path)
		}
		if logFile == nil {
			return
		}
	}

	fmt.Fprintf(logFile, "[%s] %s\n",
		time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}
