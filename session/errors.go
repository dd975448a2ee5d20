package session

import "fmt"

// CompileError is returned when the compiler exits with a non-zero status or
// runs past the configured timeout.
type CompileError struct {
	// ExitCode is the compiler's exit status, -1 if it was killed.
	ExitCode int
	// Snippet is the excerpt shown to the user.
	Snippet string
	// TimedOut is set when the compile hit the timeout.
	TimedOut bool
}

func (e *CompileError) Error() string {
	if e.TimedOut {
		return e.Snippet
	}
	return fmt.Sprintf("compiler exited with status %d: %s", e.ExitCode, e.Snippet)
}

// PreviewError wraps failures to start or feed the viewer.
type PreviewError struct {
	Err error
}

func (e *PreviewError) Error() string {
	return fmt.Sprintf("preview generation error: %v", e.Err)
}

func (e *PreviewError) Unwrap() error {
	return e.Err
}
