package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoTranscript  = errors.New("no transcript path")
	ErrInvalidInput  = errors.New("invalid session input")
	ErrInvalidConfig = errors.New("invalid configuration")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

type LoaderError struct {
	Path string
	Err  error
}

func (e LoaderError) Error() string {
	return fmt.Sprintf("failed to load from %s: %v", e.Path, e.Err)
}

func (e LoaderError) Unwrap() error {
	return e.Err
}

// CommandError wraps a failed external command such as the branch lookup.
type CommandError struct {
	Name string
	Err  error
}

func (e CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Name, e.Err)
}

func (e CommandError) Unwrap() error {
	return e.Err
}
