package response

import (
	"errors"
	"fmt"
)

// Error is a domain sentinel that carries the HTTP status it maps to. Its
// message is safe to show to the operator.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap attaches the collaborator failure behind a sentinel. errors.Is matches
// both, while handlers only ever show the sentinel message.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
