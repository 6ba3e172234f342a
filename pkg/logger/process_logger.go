package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ProcessLogger handles verbose per-song logging for the processing
// pipeline (download, transcription, analysis, choreography).
type ProcessLogger struct {
	videoID   string
	logPath   string
	file      *os.File
	mu        sync.Mutex
	startTime time.Time
}

// NewProcessLogger creates a new process logger for a song.
// Deletes any existing log file and creates a fresh one.
func NewProcessLogger(storagePath, videoID string) (*ProcessLogger, error) {
	logDir := filepath.Join(storagePath, "logs", videoID)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "log.txt")

	if _, err := os.Stat(logPath); err == nil {
		if err := os.Remove(logPath); err != nil {
			return nil, fmt.Errorf("failed to delete existing log: %w", err)
		}
	}

	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	pl := &ProcessLogger{
		videoID:   videoID,
		logPath:   logPath,
		file:      file,
		startTime: time.Now(),
	}

	pl.writeHeader()
	return pl, nil
}

func (pl *ProcessLogger) writeHeader() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	header := fmt.Sprintf(`================================================================================
DANCE CARD - SONG PROCESSING LOG
Video ID: %s
Started: %s
================================================================================

`, pl.videoID, pl.startTime.Format("2006-01-02 15:04:05 MST"))

	pl.file.WriteString(header)
	pl.file.Sync()
}

// Step logs the start of a pipeline step.
func (pl *ProcessLogger) Step(name string, description string) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	elapsed := time.Since(pl.startTime).Round(time.Millisecond)
	msg := fmt.Sprintf("\n[%s] ========== STEP: %s ==========\n", elapsed, name)
	if description != "" {
		msg += fmt.Sprintf("Description: %s\n", description)
	}
	msg += "\n"

	pl.file.WriteString(msg)
	pl.file.Sync()
}

// Info logs an informational message.
func (pl *ProcessLogger) Info(format string, args ...interface{}) {
	pl.log("INFO", format, args...)
}

// Property logs a key-value property.
func (pl *ProcessLogger) Property(key string, value interface{}) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	elapsed := time.Since(pl.startTime).Round(time.Millisecond)
	msg := fmt.Sprintf("[%s] PROPERTY: %s = %v\n", elapsed, key, value)

	pl.file.WriteString(msg)
	pl.file.Sync()
}

// Error logs an error message.
func (pl *ProcessLogger) Error(format string, args ...interface{}) {
	pl.log("ERROR", format, args...)
}

// Success logs a success message.
func (pl *ProcessLogger) Success(format string, args ...interface{}) {
	pl.log("SUCCESS", format, args...)
}

func (pl *ProcessLogger) log(level string, format string, args ...interface{}) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	elapsed := time.Since(pl.startTime).Round(time.Millisecond)
	message := fmt.Sprintf(format, args...)
	msg := fmt.Sprintf("[%s] %s: %s\n", elapsed, level, message)

	pl.file.WriteString(msg)
	pl.file.Sync()
}

// Close closes the log file and writes the footer.
func (pl *ProcessLogger) Close(success bool, finalMessage string) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	elapsed := time.Since(pl.startTime).Round(time.Millisecond)
	endTime := time.Now()

	status := "COMPLETED SUCCESSFULLY"
	if !success {
		status = "FAILED"
	}

	footer := fmt.Sprintf(`
================================================================================
PROCESSING %s
Duration: %s
Completed: %s
%s
================================================================================
`, status, elapsed, endTime.Format("2006-01-02 15:04:05 MST"), finalMessage)

	pl.file.WriteString(footer)
	pl.file.Sync()

	return pl.file.Close()
}

// GetLogPath returns the path to the log file.
func (pl *ProcessLogger) GetLogPath() string {
	return pl.logPath
}
