// Package logging installs the toolkit's default slog logger: colored
// console output, fanned out to a timestamped JSON file when a log
// directory is configured.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// Setup configures the global slog logger. If logOutputDir is non-empty,
// logs go to both stdout and a timestamped file under that directory.
func Setup(levelStr string, logOutputDir string) error {
	level := parseLevel(levelStr)

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{Level: level})

	if logOutputDir == "" {
		slog.SetDefault(slog.New(consoleHandler))
		return nil
	}

	logDir := os.ExpandEnv(logOutputDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("logging: create %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join(logDir, fmt.Sprintf("ybarc_%s.log", timestamp))

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open %s: %w", logPath, err)
	}
	fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})

	slog.SetDefault(slog.New(slogmulti.Fanout(consoleHandler, fileHandler)))
	fmt.Fprintf(os.Stderr, "logging to file: %s\n", logPath)
	return nil
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
