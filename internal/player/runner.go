package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	perrors "github.com/tessro/play-notion/internal/errors"
)

// Runner runs a player command to completion.
type Runner interface {
	// Run blocks until the player exits and returns its exit code. A
	// non-zero exit code is not an error; failing to start the player is.
	Run(ctx context.Context, cmd Command) (int, error)
}

// ShellRunner runs commands through the platform shell with the terminal
// attached.
type ShellRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner returns a runner attached to the process's standard streams.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Runner.
func (r *ShellRunner) Run(ctx context.Context, cmd Command) (int, error) {
	if _, err := exec.LookPath(cmd.Binary); err != nil {
		return -1, fmt.Errorf("%w: %w", perrors.ErrPlayerSpawn, err)
	}

	name, flag := shell()
	c := exec.CommandContext(ctx, name, flag, cmd.String())
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	if err := c.Start(); err != nil {
		return -1, fmt.Errorf("%w: %w", perrors.ErrPlayerSpawn, err)
	}

	err := c.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, fmt.Errorf("waiting for player: %w", err)
	}
	return 0, nil
}

func shell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}
