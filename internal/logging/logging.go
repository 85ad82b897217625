// Package logging provides debug logging and log-file setup for vedit.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// DebugEnabled controls whether Debug() produces output.
// Set via -debug flag, DEBUG=1 or the config file.
var DebugEnabled bool

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// EnabledFromEnv reports whether DEBUG=1 is set.
func EnabledFromEnv() bool {
	return os.Getenv("DEBUG") == "1"
}

// ToFile sends the standard logger to path, creating parent directories
// as needed. The screen belongs to the editor, so nothing may be logged to
// stdout or stderr while it runs. The returned closer restores stderr.
func ToFile(path string) (io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return logFile{f}, nil
}

type logFile struct {
	*os.File
}

func (l logFile) Close() error {
	log.SetOutput(os.Stderr)
	return l.File.Close()
}
