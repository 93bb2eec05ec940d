// Package logging routes the standard logger to stderr and an optional log
// file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"mathsolver/internal/config"
)

// Setup configures the standard logger. When cfg.File is set, log lines are
// written to both stderr and the file. The returned closer flushes and closes
// the file handle.
func Setup(cfg *config.LogConfig) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
