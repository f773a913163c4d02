// Package console writes leveled progress messages with severity markers.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level is a message severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a config level name to a Level. Unknown names map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Colors
var (
	Info  = lipgloss.Color("#3B82F6") // Blue
	Warn  = lipgloss.Color("#F59E0B") // Amber
	Error = lipgloss.Color("#EF4444") // Red
	Dim   = lipgloss.Color("#6B7280") // Darker gray
)

// markerStyles renders the severity markers for the output r writes to.
func markerStyles(r *lipgloss.Renderer) map[Level]lipgloss.Style {
	return map[Level]lipgloss.Style{
		LevelDebug: r.NewStyle().Foreground(Dim),
		LevelInfo:  r.NewStyle().Foreground(Info),
		LevelWarn:  r.NewStyle().Bold(true).Foreground(Warn),
		LevelError: r.NewStyle().Bold(true).Foreground(Error),
	}
}

// Logger prints "[LEVEL] message" lines.
type Logger struct {
	out    io.Writer
	level  Level
	color  string
	styles map[Level]lipgloss.Style
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the minimum level that is printed.
func WithLevel(level Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// WithColor sets the color mode: "always", "never", or "auto" (color only
// when out is a terminal that supports it).
func WithColor(mode string) Option {
	return func(l *Logger) {
		l.color = mode
	}
}

// New creates a logger writing to out.
func New(out io.Writer, opts ...Option) *Logger {
	l := &Logger{
		out:   out,
		level: LevelInfo,
		color: "auto",
	}
	for _, opt := range opts {
		opt(l)
	}

	r := lipgloss.NewRenderer(out)
	switch l.color {
	case "always":
		r.SetColorProfile(termenv.ANSI)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	}
	l.styles = markerStyles(r)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, WithLevel(LevelError+1))
}

// Enabled reports whether messages at level are printed.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	marker := l.styles[level].Render("[" + level.String() + "]")
	_, _ = fmt.Fprintf(l.out, "%s %s\n", marker, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs a progress message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}
