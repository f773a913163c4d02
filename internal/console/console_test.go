package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerMarkers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WithColor("never"))

	log.Infof("Gathered last %d URLs.", 3)
	log.Warnf("player exited with code %d", 2)
	log.Errorf("boom")

	want := "[INFO] Gathered last 3 URLs.\n[WARN] player exited with code 2\n[ERROR] boom\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WithLevel(LevelWarn), WithColor("never"))

	log.Debugf("hidden")
	log.Infof("hidden")
	log.Warnf("shown")

	if got := buf.String(); got != "[WARN] shown\n" {
		t.Errorf("output = %q, want only the warning", got)
	}
}

func TestLoggerAutoColorOnBuffer(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	var buf bytes.Buffer
	log := New(&buf, WithColor("auto"))
	log.Infof("plain")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("auto color wrote escape codes to a non-terminal: %q", buf.String())
	}
}

func TestLoggerColorModes(t *testing.T) {
	tests := []struct {
		mode       string
		wantEscape bool
	}{
		{"always", true},
		{"never", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			t.Setenv("CLICOLOR_FORCE", "1")

			var buf bytes.Buffer
			log := New(&buf, WithColor(tt.mode))
			log.Errorf("boom")

			got := buf.String()
			if strings.Contains(got, "\x1b[") != tt.wantEscape {
				t.Errorf("WithColor(%q) output = %q, want escape codes: %v", tt.mode, got, tt.wantEscape)
			}
			if !strings.Contains(got, "[ERROR]") || !strings.HasSuffix(got, " boom\n") {
				t.Errorf("WithColor(%q) output = %q, want the marker and message", tt.mode, got)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(LevelError) {
		t.Error("Discard() logger should not enable any level")
	}
	log.Errorf("nothing happens")
}

func TestNilLogger(t *testing.T) {
	var log *Logger
	if log.Enabled(LevelError) {
		t.Error("nil logger should not be enabled")
	}
}
