package services

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when no task exists for the given id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrProjectNotFound is returned when no project exists for the given id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrCorruptData is returned by the codec when a persisted blob is not
	// well-formed. Read paths treat it as an absent collection.
	ErrCorruptData = errors.New("corrupt data")
)

// ValidationError reports rejected input. It is surfaced to the caller and
// never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
