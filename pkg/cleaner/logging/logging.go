// Package logging provides component-scoped structured logging for the
// cleaner. It wraps charmbracelet/log with per-component level
// overrides and a single shared output.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scanner")
//	logger.Info("scan started", "roots", 6)
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// parseLevel parses a level string into a charmbracelet/log level.
func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Path is an optional log file. Empty logs to stderr.
	Path string

	// Components maps component names to level overrides.
	Components map[string]string
}

// Logger is a component-scoped logger.
type Logger struct {
	inner *log.Logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) { l.inner.Debug(msg, args...) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) { l.inner.Info(msg, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) { l.inner.Warn(msg, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) { l.inner.Error(msg, args...) }

// With returns a new logger with additional context fields.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// state holds the global logging state.
type state struct {
	mu          sync.Mutex
	initialized bool
	out         io.Writer
	file        *os.File
	level       log.Level
	components  map[string]log.Level
	loggers     map[string]*Logger
}

var globalState = &state{
	out:        io.Discard,
	level:      log.InfoLevel,
	components: make(map[string]log.Level),
	loggers:    make(map[string]*Logger),
}

// Init initializes the logging system. Before Init is called all
// loggers write to io.Discard, so library use without a CLI stays
// silent.
func Init(cfg Config) error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	components := make(map[string]log.Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := parseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		components[comp] = parsed
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		out = file
	}

	if globalState.file != nil {
		_ = globalState.file.Close()
	}

	globalState.out = out
	globalState.file = file
	globalState.level = level
	globalState.components = components
	globalState.loggers = make(map[string]*Logger)
	globalState.initialized = true
	return nil
}

// Get returns the logger for a component, creating it on first use.
func Get(component string) *Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if l, ok := globalState.loggers[component]; ok {
		return l
	}

	level := globalState.level
	if override, ok := globalState.components[component]; ok {
		level = override
	}

	inner := log.NewWithOptions(globalState.out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          component,
	})

	l := &Logger{inner: inner}
	globalState.loggers[component] = l
	return l
}

// Close flushes and closes the log output.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if globalState.file != nil {
		err := globalState.file.Close()
		globalState.file = nil
		globalState.out = io.Discard
		globalState.initialized = false
		globalState.loggers = make(map[string]*Logger)
		return err
	}
	return nil
}
