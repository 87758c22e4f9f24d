// Package logging configures the logrus logger. Logs go to a dated file
// because the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/config"
)

// Setup creates a logger from cfg. When disabled, everything is discarded.
// The returned closer releases the log file.
func Setup(cfg config.LogConfig, enabled bool) (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	if !enabled {
		l.SetOutput(io.Discard)
		return l, nopCloser{}, nil
	}

	path, err := logPath(cfg.Path, time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)

	if cfg.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return l, f, nil
}

// logPath returns <dir>/<date>.log, creating dir. An empty dir uses the
// xdg state directory.
func logPath(dir string, now time.Time) (string, error) {
	name := now.Format("2006-01-02") + ".log"
	if dir == "" {
		return xdg.StateFile(filepath.Join("vidctl", "logs", name))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
