package xcall

import "fmt"

// LaunchError reports that the OS opener could not start Bear. The action
// never reached the application; no callback will arrive.
type LaunchError struct {
	ExitCode int
	Reason   string
}

func (e *LaunchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("launch failed (exit %d): %s", e.ExitCode, e.Reason)
	}
	return fmt.Sprintf("launch failed (exit %d)", e.ExitCode)
}

// ActionError reports that Bear explicitly rejected the action through its
// error callback.
type ActionError struct {
	Code    int
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action rejected (code %d): %s", e.Code, e.Message)
}
