package eval

import (
	"errors"
	"fmt"
)

// ErrExit is returned when the user asks to end the session.
var ErrExit = errors.New("exit requested")

// Error is a user-facing evaluation failure such as an undefined name.
type Error struct {
	Kind string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func nameError(name string) error {
	return &Error{Kind: "NameError", Msg: fmt.Sprintf("name '%s' is not defined", name)}
}

func typeError(format string, a ...interface{}) error {
	return &Error{Kind: "TypeError", Msg: fmt.Sprintf(format, a...)}
}

func syntaxError(format string, a ...interface{}) error {
	return &Error{Kind: "SyntaxError", Msg: fmt.Sprintf(format, a...)}
}

// ValueError reports an argument with the right type but a bad value.
func ValueError(format string, a ...interface{}) error {
	return &Error{Kind: "ValueError", Msg: fmt.Sprintf(format, a...)}
}

// TypeError reports an argument of the wrong type or a bad call.
func TypeError(format string, a ...interface{}) error {
	return typeError(format, a...)
}
