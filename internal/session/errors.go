package session

import (
	"errors"
	"fmt"
)

// ErrNoOp is returned when an operation does not apply in the current phase
// or position, e.g. Retreat at the first question.
var ErrNoOp = errors.New("operation not applicable")

// MessageEmpty is the ValidationError message for blank input.
const MessageEmpty = "must not be empty"

// ValidationError reports rejected input. State is unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PersistenceError reports a failed write. The in-memory state is unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persist state: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
