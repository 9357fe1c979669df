package stats

import "errors"

var (
	// ErrProjectNotFound is returned when a project ID resolves to nothing.
	ErrProjectNotFound = errors.New("stats: project not found")

	// ErrAccessDenied is returned when the caller may not touch the project.
	ErrAccessDenied = errors.New("stats: access denied")
)

// ValidationError reports a rejected client payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
