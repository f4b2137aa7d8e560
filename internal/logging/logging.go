package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	clog "github.com/charmbracelet/log"
)

const defaultLogFile = "modeterm.log"

var (
	mu     sync.Mutex
	file   *os.File
	logger = clog.NewWithOptions(io.Discard, clog.Options{ReportTimestamp: true})
)

// Configure opens the log file and rebuilds the shared logger. The
// terminal belongs to the renderer, so nothing is ever logged to
// stdout or stderr once the session runs. Empty paths fall back to the
// default file; verbose enables trace entries.
func Configure(path string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if strings.TrimSpace(path) == "" {
		path = defaultLogFile
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}

	if file != nil {
		file.Close()
	}
	file = f

	l := clog.NewWithOptions(f, clog.Options{ReportTimestamp: true})
	if verbose {
		l.SetLevel(clog.DebugLevel)
	}
	logger = l
	return nil
}

// Logger returns the shared logger.
func Logger() *clog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error records an error. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	Logger().Error(err.Error())
}

// Info records an informational entry with structured key-values.
func Info(msg string, keyvals ...interface{}) {
	Logger().Info(msg, keyvals...)
}

// Trace records a structured debug entry. Entries are dropped unless
// Configure enabled verbose logging.
func Trace(event string, keyvals ...interface{}) {
	Logger().Debug(event, keyvals...)
}

// Close releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
	logger = clog.NewWithOptions(io.Discard, clog.Options{ReportTimestamp: true})
}
