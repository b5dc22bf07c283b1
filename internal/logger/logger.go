package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

const maxLogSize = 10 * 1024 * 1024

var (
	debugLog *os.File
	logPath  string
)

// Init initializes the debug logger under ~/.trash-castle
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitDir(filepath.Join(homeDir, ".trash-castle"))
}

// InitDir initializes the debug logger in the given directory
func InitDir(logDir string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create or append to debug.log
	path := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	Close()
	debugLog = f
	logPath = path

	log.SetOutput(debugLog)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	LogInfo("Logger initialized, log file: %s", logPath)
	return nil
}

// InitWithWriter sends log output to w instead of a file
func InitWithWriter(w io.Writer) {
	Close()
	logPath = ""
	log.SetOutput(w)
	log.SetFlags(log.Ltime)
}

// Close closes the debug log file
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	_ = log.Output(2, fmt.Sprintf("[INFO] "+format, args...))
}

// LogError logs an error message
func LogError(format string, args ...any) {
	_ = log.Output(2, fmt.Sprintf("[ERROR] "+format, args...))
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	_ = log.Output(2, fmt.Sprintf("[PANIC] %v\n%s", r, debug.Stack()))
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	return logPath
}
