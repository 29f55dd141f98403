package plot

import "errors"

// ErrNotImplemented is returned by Render for a format without a render
// branch. Subplots validates formats, so a Plot never reaches it.
var ErrNotImplemented = errors.New("plot: render not implemented for format")
