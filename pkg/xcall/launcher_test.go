package xcall

import (
	"context"
	"errors"
	"testing"
)

func TestExecLauncher_Success(t *testing.T) {
	l := NewExecLauncher([]string{"true"})
	if err := l.Open(context.Background(), "bear://x-callback-url/tags"); err != nil {
		t.Errorf("xcall:launcher_test - Open failed: %v", err)
	}
}

func TestExecLauncher_NonZeroExit(t *testing.T) {
	l := NewExecLauncher([]string{"false"})
	err := l.Open(context.Background(), "bear://x-callback-url/tags")
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("xcall:launcher_test - err = %v, want *LaunchError", err)
	}
	if launchErr.ExitCode != 1 {
		t.Errorf("xcall:launcher_test - ExitCode = %d, want 1", launchErr.ExitCode)
	}
}

func TestExecLauncher_SpawnFailure(t *testing.T) {
	l := NewExecLauncher([]string{"definitely-not-a-real-opener-binary"})
	err := l.Open(context.Background(), "bear://x-callback-url/tags")
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("xcall:launcher_test - err = %v, want *LaunchError", err)
	}
	if launchErr.ExitCode != -1 {
		t.Errorf("xcall:launcher_test - ExitCode = %d, want -1", launchErr.ExitCode)
	}
}

func TestNewExecLauncher_DefaultCommand(t *testing.T) {
	l := NewExecLauncher(nil)
	if len(l.Command) == 0 {
		t.Errorf("xcall:launcher_test - default command is empty")
	}
}
