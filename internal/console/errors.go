package console

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the registry. Structured errors below match them with errors.Is.
var (
	ErrDuplicateName      = errors.New("name already registered")
	ErrNotFound           = errors.New("not found")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrArityMismatch      = errors.New("argument count mismatch")
	ErrArgumentConversion = errors.New("argument conversion failed")
	ErrEmptyLine          = errors.New("empty command line")
	ErrEmptyName          = errors.New("name cannot be empty or contain whitespace")
	ErrQueueFull          = errors.New("command queue is full")
	ErrSettingKind        = errors.New("setting has a different type")
)

// ArityError reports a token count that does not match the command signature.
type ArityError struct {
	Command string
	Want    int
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("command %s expects %d argument(s), got %d", e.Command, e.Want, e.Got)
}

// Is makes ArityError match ErrArityMismatch.
func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// ConversionError reports a token that could not be converted to the declared kind.
// Index is zero-based and counts arguments only, not the command name.
type ConversionError struct {
	Command  string
	Index    int
	Token    string
	Expected ArgKind
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("argument %d (%q) is not a valid %s", e.Index, e.Token, e.Expected)
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	return msg
}

// Is makes ConversionError match ErrArgumentConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrArgumentConversion
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
