package manager

import "errors"

var (
	// ErrDrawNotImplemented is returned when no draw methods are configured
	// and the default draw_plot callable was never registered.
	ErrDrawNotImplemented = errors.New("manager: please implement draw_plot")
	// ErrUnknownDrawMethod is returned when a configured name has no callable.
	ErrUnknownDrawMethod = errors.New("manager: unknown draw method")
)
