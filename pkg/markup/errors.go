package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the generic invalid-argument error. Every
	// validation failure in this package matches it under errors.Is.
	ErrInvalidArgument = errors.New("djmpl: invalid argument")
	// ErrInvalidFormat is returned when a plot format is outside Formats().
	ErrInvalidFormat = fmt.Errorf("%w: plot format not available", ErrInvalidArgument)
	// ErrEngineNotSupported narrows ErrInvalidArgument to unknown template
	// engines so callers can tell "unknown engine" from "unknown format".
	ErrEngineNotSupported = fmt.Errorf("%w: template engine not supported", ErrInvalidArgument)
)

// EngineNotSupportedError reports the identifier that failed to resolve.
type EngineNotSupportedError struct {
	Name string
}

func (e *EngineNotSupportedError) Error() string {
	return fmt.Sprintf("markup: template engine %q not supported", e.Name)
}

// Is matches ErrEngineNotSupported and, through it, ErrInvalidArgument.
func (e *EngineNotSupportedError) Is(target error) bool {
	return target == ErrEngineNotSupported || target == ErrInvalidArgument
}

// Unwrap exposes ErrEngineNotSupported for errors.As/Is chains.
func (e *EngineNotSupportedError) Unwrap() error {
	return ErrEngineNotSupported
}
