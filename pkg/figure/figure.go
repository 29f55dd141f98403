package figure

import (
	"fmt"
	"math"
)

// Figure is a drawing surface holding a grid of axes.
type Figure struct {
	id       int
	opts     Options
	grid     *Grid
	tight    bool
	closed   bool
	registry *Registry
}

// New allocates a figure in the Default registry.
func New(options Options) (*Figure, error) {
	return Default.New(options)
}

func newFigure(options Options) (*Figure, error) {
	if options.Rows < 0 || options.Cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, options.Rows, options.Cols)
	}
	if options.FigSize[0] < 0 || options.FigSize[1] < 0 || options.DPI < 0 {
		return nil, fmt.Errorf("%w: size %vin at %v dpi", ErrInvalidGrid, options.FigSize, options.DPI)
	}

	opts := options.withDefaults()
	fig := &Figure{opts: opts}
	fig.grid = newGrid(opts.Rows, opts.Cols)
	return fig, nil
}

// ID is the registry handle of the figure.
func (f *Figure) ID() int {
	return f.id
}

// Axes returns the axes grid paired with the figure.
func (f *Figure) Axes() *Grid {
	return f.grid
}

// Size returns the canvas size in pixels.
func (f *Figure) Size() (width, height int) {
	width = int(math.Round(f.opts.FigSize[0] * f.opts.DPI))
	height = int(math.Round(f.opts.FigSize[1] * f.opts.DPI))
	return width, height
}

// DPI returns the dots per inch used for pixel conversion.
func (f *Figure) DPI() float64 {
	return f.opts.DPI
}

// Title returns the figure level title.
func (f *Figure) Title() string {
	return f.opts.Title
}

// SetTitle sets the figure level title drawn above the grid.
func (f *Figure) SetTitle(title string) {
	f.opts.Title = title
}

// Palette returns the series color cycle.
func (f *Figure) Palette() []string {
	out := make([]string, len(f.opts.Palette))
	copy(out, f.opts.Palette)
	return out
}

// Background returns the canvas fill color.
func (f *Figure) Background() string {
	return f.opts.Background
}

// Extra returns a renderer specific setting passed through Options.Extra.
func (f *Figure) Extra(key string) (any, bool) {
	if f.opts.Extra == nil {
		return nil, false
	}
	value, ok := f.opts.Extra[key]
	return value, ok
}

// TightLayout shrinks the padding around each axes.
func (f *Figure) TightLayout() {
	f.tight = true
}

// IsTight reports whether TightLayout was applied.
func (f *Figure) IsTight() bool {
	return f.tight
}

// ColorFor returns the palette color for the i-th series of an axes.
func (f *Figure) ColorFor(i int) string {
	if len(f.opts.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return f.opts.Palette[i%len(f.opts.Palette)]
}

// Close releases the figure and removes it from its registry. Closing twice
// is a no-op.
func (f *Figure) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.grid.closed = true
	for _, ax := range f.grid.axes {
		ax.series = nil
	}
	if f.registry != nil {
		f.registry.release(f.id)
	}
	return nil
}

// Closed reports whether Close was called.
func (f *Figure) Closed() bool {
	return f.closed
}

// Err returns ErrClosed for closed figures so renderers can bail out early.
func (f *Figure) Err() error {
	if f.closed {
		return fmt.Errorf("%w: figure %d", ErrClosed, f.id)
	}
	return nil
}
