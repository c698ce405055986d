// Package transcript provides timestamped session logging to file and stdout
// with color support.
package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// event class colors using fatih/color.
var (
	commandColor   = color.New(color.FgGreen)
	infoColor      = color.New(color.FgCyan)
	warnColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	timestampColor = color.New(color.FgWhite)
)

// timestampFormat is the format for timestamps: YY-MM-DD HH:MM:SS
const timestampFormat = "06-01-02 15:04:05"

// Logger writes a timestamped session transcript to both file and stdout.
type Logger struct {
	file      *os.File
	stdout    io.Writer
	startTime time.Time
}

// Config holds logger configuration.
type Config struct {
	Dir     string // directory for session transcript files
	Branch  string // current git branch, may be empty
	NoColor bool   // disable color output (sets color.NoColor globally)
}

// NewLogger creates a logger writing to a session transcript file and stdout.
// the transcript filename carries the session start time.
func NewLogger(cfg Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}

	start := time.Now()
	path := filepath.Join(cfg.Dir, "session-"+start.Format("20060102-150405")+".txt")
	f, err := os.Create(path) //nolint:gosec // path is constructed internally
	if err != nil {
		return nil, fmt.Errorf("create transcript file: %w", err)
	}

	l := &Logger{file: f, stdout: os.Stdout, startTime: start}

	// write header
	l.writeFile("# Quill Session Transcript\n")
	if cfg.Branch != "" {
		l.writeFile("Branch: %s\n", cfg.Branch)
	}
	l.writeFile("Started: %s\n", start.Format("2006-01-02 15:04:05"))
	l.writeFile("%s\n\n", strings.Repeat("-", 60))

	return l, nil
}

// Path returns the transcript file path.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Command logs a dispatched command line.
func (l *Logger) Command(name string) {
	l.print(commandColor, "> /%s", name)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.print(infoColor, format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) {
	l.print(warnColor, "[WARN] "+format, args...)
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	l.print(errorColor, "[ERROR] "+format, args...)
}

// Output logs command output without timestamp, preserving its layout.
func (l *Logger) Output(text string) {
	text = strings.TrimRight(text, "\n")
	l.writeFile("%s\n", text)
	l.writeStdout("%s\n", text)
}

// Elapsed returns the time since the session started, rounded to a second.
func (l *Logger) Elapsed() string {
	return time.Since(l.startTime).Round(time.Second).String()
}

// Close finalizes the transcript with a footer and closes the file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	l.writeFile("\n%s\n", strings.Repeat("-", 60))
	l.writeFile("Ended: %s (after %s)\n", time.Now().Format("2006-01-02 15:04:05"), l.Elapsed())

	if info, err := l.file.Stat(); err == nil {
		l.writeFile("Size: %s\n", humanize.IBytes(uint64(info.Size()))) //nolint:gosec // sizes are non-negative
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close transcript: %w", err)
	}
	l.file = nil
	return nil
}

// print writes a timestamped message to both file and stdout.
func (l *Logger) print(c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format(timestampFormat)

	// write to file without color
	l.writeFile("[%s] %s\n", timestamp, msg)

	// write to stdout with color
	l.writeStdout("%s %s\n", timestampColor.Sprintf("[%s]", timestamp), c.Sprint(msg))
}

func (l *Logger) writeFile(format string, args ...any) {
	if l.file == nil {
		return
	}
	fmt.Fprintf(l.file, format, args...)
}

func (l *Logger) writeStdout(format string, args ...any) {
	fmt.Fprintf(l.stdout, format, args...)
}
