package cli

import "fmt"

// ExitCodeLoadFailed is returned with --fail-on-error when the activity
// document could not be loaded.
const ExitCodeLoadFailed = 2

// ExitError asks main to exit with Code instead of the generic failure code.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.Code)
}
