package figure

import "errors"

var (
	// ErrInvalidGrid is returned for non-positive grid dimensions or sizes.
	ErrInvalidGrid = errors.New("figure: invalid grid dimensions")
	// ErrClosed is returned when drawing on or rendering a closed figure.
	ErrClosed = errors.New("figure: figure is closed")
	// ErrLengthMismatch is returned when paired series values differ in length.
	ErrLengthMismatch = errors.New("figure: series lengths differ")
)
