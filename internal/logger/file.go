package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/rsearch/internal/search"
)

// FileLogger writes one log file per search into a log directory and keeps a
// latest.log symlink pointing at the most recent one.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	searchID string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates logDir if needed and opens search-YYYYMMDD-HHMMSS.log in it.
// searchID is written into the header so the log can be tied to an export.
func NewFileLogger(logDir, logLevel, searchID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("search-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create search log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		searchID: searchID,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== rsearch Search Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Search ID: %s\n", searchID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the path of the log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSearchStart records the search parameters. It is written at every level
// because the header is useless without them.
func (fl *FileLogger) LogSearchStart(opts search.Options) {
	content := opts.ContentPattern
	if content == "" {
		content = "(none)"
	}
	fl.writeRunLog(fmt.Sprintf(
		"[%s] Root:            %s\n"+
			"[%s] Name pattern:    %s\n"+
			"[%s] Content pattern: %s\n"+
			"[%s] Workers:         %d (fan-out: %t, progress: %t, gitignore: %t)\n",
		timestamp(), opts.Root,
		timestamp(), opts.NamePattern,
		timestamp(), content,
		timestamp(), opts.Workers, opts.FanOut, opts.ShowProgress, opts.RespectGitignore,
	))
}

// LogSummary logs the search summary with the full match list at INFO level.
func (fl *FileLogger) LogSummary(result *search.Result) {
	if result == nil || !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === SEARCH SUMMARY ===\n", ts)
	fmt.Fprintf(&b, "[%s] Matches:       %d\n", ts, len(result.Matches))
	fmt.Fprintf(&b, "[%s] Files visited: %d\n", ts, result.FilesVisited)
	fmt.Fprintf(&b, "[%s] Unreadable:    %d\n", ts, result.DirErrors)
	fmt.Fprintf(&b, "[%s] Total time:    %.3fs\n", ts, result.Duration.Seconds())
	for _, path := range result.Matches {
		fmt.Fprintf(&b, "[%s]   %s\n", ts, path)
	}
	fmt.Fprintf(&b, "[%s] Completed at:  %s\n", ts, time.Now().Format(time.RFC3339))

	fl.writeRunLog(b.String())
}

// Close flushes and closes the log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync search log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close search log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
