package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a build
func (l *Logger) BuildStarted(sourceDir, outputDir string) {
	l.Info("build started",
		"source_dir", sourceDir,
		"output_dir", outputDir)
}

// BuildCompleted logs the completion of a build
func (l *Logger) BuildCompleted(rendered, skipped, errors int, duration time.Duration) {
	l.Info("build completed",
		"files_rendered", rendered,
		"files_skipped", skipped,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// FileRendered logs a page written to disk
func (l *Logger) FileRendered(source, dest string, nodes int) {
	l.Info("file rendered",
		"source", source,
		"dest", dest,
		"nodes", nodes)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ParseFailed logs a document that fell back to its raw text
func (l *Logger) ParseFailed(file string, err error) {
	l.Warn("parse failed, rendered fallback",
		"file", file,
		"error", err)
}

// FrontMatterError logs a front matter block that could not be read
func (l *Logger) FrontMatterError(file string, err error) {
	l.Warn("front matter ignored",
		"file", file,
		"error", err)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(sourceDir, outputDir string, maxNesting int) {
	l.Debug("config loaded",
		"source_dir", sourceDir,
		"output_dir", outputDir,
		"max_nesting_level", maxNesting)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
