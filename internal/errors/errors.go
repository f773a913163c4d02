package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrMissingToken      = errors.New("notion token not configured")
	ErrMissingDatabase   = errors.New("notion database id not configured")
	ErrMissingDownloader = errors.New("yt-dlp not found")
	ErrRemoteService     = errors.New("notion request failed")
	ErrPlayerSpawn       = errors.New("could not start player")
	ErrPlayerExit        = errors.New("player exited with an error")
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitRemote      = 3
	ExitPlayerSpawn = 4
)

// PlayError wraps an error with a user-friendly suggestion.
type PlayError struct {
	Err        error
	Suggestion string
}

func (e *PlayError) Error() string {
	return e.Err.Error()
}

func (e *PlayError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PlayError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMissingDatabase) || errors.Is(err, ErrMissingDownloader)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsConfig(err):
		return ExitConfig
	case errors.Is(err, ErrRemoteService):
		return ExitRemote
	case errors.Is(err, ErrPlayerSpawn):
		return ExitPlayerSpawn
	default:
		return ExitFailure
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var playErr *PlayError
	if errors.As(err, &playErr) && playErr.Suggestion != "" {
		return playErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrMissingToken):
		return "Set notion.token in the config file or export PLAY_NOTION_TOKEN"
	case errors.Is(err, ErrMissingDatabase):
		return "Set notion.database_id in the config file or export PLAY_NOTION_DATABASE_ID"
	case errors.Is(err, ErrMissingDownloader):
		return "Install yt-dlp or point player.ytdlp_path at the binary"
	case errors.Is(err, ErrPlayerSpawn):
		return "Install mpv or set player.binary to a player on your PATH"
	case errors.Is(err, ErrInvalidConfig):
		return "Run 'play-notion config show' to inspect the loaded configuration"
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized") {
		return "Check that the integration token is valid"
	}
	if strings.Contains(errStr, "404") || strings.Contains(errStr, "object_not_found") {
		return "Check the database id and that the database is shared with the integration"
	}
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return "Too many requests. Wait a moment and try again"
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return "Check your internet connection and try again"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("%s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return err.Error()
}
