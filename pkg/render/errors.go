package render

import "errors"

var (
	// ErrNilFigure is returned when a renderer receives no figure.
	ErrNilFigure = errors.New("render: figure is required")
	// ErrNilContext is returned when a renderer receives a nil context.
	ErrNilContext = errors.New("render: context is required")
)
