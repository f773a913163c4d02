// Package player builds and runs the media player command line.
package player

import "strings"

// Fallbacks used when Options leaves a field empty.
const (
	DefaultBinary  = "mpv"
	DefaultAutofit = "100%x720"
)

// Options configures the player command.
type Options struct {
	// Binary is the player executable, DefaultBinary when empty.
	Binary string
	// YtdlpPath is handed to mpv's ytdl hook.
	YtdlpPath string
	// Window opens a video window instead of playing audio only.
	Window bool
	// Autofit is the window geometry used with Window, DefaultAutofit
	// when empty.
	Autofit string
	// ExtraArgs are appended after the fixed flags.
	ExtraArgs []string
}

// Command is a player invocation.
type Command struct {
	Binary string
	Args   []string
}

// Build assembles the player command for urls. URLs are appended in order
// after the flags; an empty list yields a command with no URLs.
func Build(urls []string, opts Options) Command {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	autofit := opts.Autofit
	if autofit == "" {
		autofit = DefaultAutofit
	}

	args := []string{
		"--term-playing-msg='Title: ${media-title}'",
		"--force-seekable=yes",
		"--script-opts=ytdl_hook-ytdl_path=" + opts.YtdlpPath,
	}
	if opts.Window {
		args = append(args, "--force-window", "--autofit="+autofit)
	} else {
		args = append(args, "--no-video")
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, urls...)

	return Command{Binary: binary, Args: args}
}

// Tokens returns the binary followed by its arguments.
func (c Command) Tokens() []string {
	return append([]string{c.Binary}, c.Args...)
}

// String renders the command as a single shell command line. Arguments are
// joined verbatim, so quoting and escaping must already be applied.
func (c Command) String() string {
	return strings.Join(c.Tokens(), " ")
}
