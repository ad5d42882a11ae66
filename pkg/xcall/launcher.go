package xcall

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher asks the OS to open an action URL. The launch is fire-and-forget
// from Bear's point of view: Open reports only whether the opener itself
// succeeded, never the action's outcome.
type Launcher interface {
	Open(ctx context.Context, url string) error
}

// DefaultOpenCommand returns the platform opener: "open -g" keeps Bear in the
// background on macOS; elsewhere xdg-open is the convention.
func DefaultOpenCommand() []string {
	if runtime.GOOS == "darwin" {
		return []string{"open", "-g"}
	}
	return []string{"xdg-open"}
}

// ExecLauncher opens URLs by running an external command with the URL as its
// final argument.
type ExecLauncher struct {
	Command []string
}

// NewExecLauncher creates an ExecLauncher; an empty command selects the
// platform default.
func NewExecLauncher(command []string) *ExecLauncher {
	if len(command) == 0 {
		command = DefaultOpenCommand()
	}
	return &ExecLauncher{Command: command}
}

// Open runs the opener and waits for its exit status. Non-zero exit or a
// spawn failure yields a LaunchError; spawn failures use exit code -1.
func (l *ExecLauncher) Open(ctx context.Context, url string) error {
	args := append(append([]string{}, l.Command...), url)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &LaunchError{ExitCode: exitErr.ExitCode(), Reason: strings.TrimSpace(stderr.String())}
		}
		return &LaunchError{ExitCode: -1, Reason: err.Error()}
	}
	return nil
}
