package figure

import "fmt"

// SeriesKind tells renderers how to draw a series.
type SeriesKind int

const (
	KindLine SeriesKind = iota
	KindScatter
	KindBar
)

func (k SeriesKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindScatter:
		return "scatter"
	case KindBar:
		return "bar"
	default:
		return fmt.Sprintf("SeriesKind(%d)", int(k))
	}
}

// Series is one drawn data set. Bar series use Categories instead of X.
type Series struct {
	Kind       SeriesKind
	Label      string
	X          []float64
	Y          []float64
	Categories []string
	Color      string
	Width      float64
}

// SeriesOption customises a series while drawing.
type SeriesOption func(*Series)

// WithLabel names the series in the legend.
func WithLabel(label string) SeriesOption {
	return func(s *Series) { s.Label = label }
}

// WithColor overrides the palette color with a hex value.
func WithColor(color string) SeriesOption {
	return func(s *Series) { s.Color = color }
}

// WithWidth sets the stroke width (lines) or dot size (scatter).
func WithWidth(width float64) SeriesOption {
	return func(s *Series) { s.Width = width }
}

// Limits is an explicit axis range.
type Limits struct {
	Min float64
	Max float64
}

// Axes is one plotting region of a figure.
type Axes struct {
	grid   *Grid
	row    int
	col    int
	title  string
	xlabel string
	ylabel string
	xlim   *Limits
	ylim   *Limits
	legend bool
	series []Series
}

// Row returns the grid row of the axes.
func (a *Axes) Row() int { return a.row }

// Col returns the grid column of the axes.
func (a *Axes) Col() int { return a.col }

// Plot draws a line through the (x, y) pairs.
func (a *Axes) Plot(x, y []float64, opts ...SeriesOption) error {
	return a.add(KindLine, x, y, nil, opts)
}

// Scatter draws unconnected points.
func (a *Axes) Scatter(x, y []float64, opts ...SeriesOption) error {
	return a.add(KindScatter, x, y, nil, opts)
}

// Bar draws one bar per category.
func (a *Axes) Bar(categories []string, values []float64, opts ...SeriesOption) error {
	if len(categories) != len(values) {
		return fmt.Errorf("%w: %d categories, %d values", ErrLengthMismatch, len(categories), len(values))
	}
	return a.add(KindBar, nil, values, categories, opts)
}

// PlotY draws y against its index, like plot(y) in interactive sessions.
func (a *Axes) PlotY(y []float64, opts ...SeriesOption) error {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return a.Plot(x, y, opts...)
}

func (a *Axes) add(kind SeriesKind, x, y []float64, categories []string, opts []SeriesOption) error {
	if a.grid != nil && a.grid.closed {
		return fmt.Errorf("%w: axes (%d, %d)", ErrClosed, a.row, a.col)
	}
	if kind != KindBar && len(x) != len(y) {
		return fmt.Errorf("%w: x has %d values, y has %d", ErrLengthMismatch, len(x), len(y))
	}
	s := Series{
		Kind:       kind,
		X:          append([]float64(nil), x...),
		Y:          append([]float64(nil), y...),
		Categories: append([]string(nil), categories...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	a.series = append(a.series, s)
	return nil
}

// Series returns a copy of the drawn series.
func (a *Axes) Series() []Series {
	out := make([]Series, len(a.series))
	copy(out, a.series)
	return out
}

// Empty reports whether nothing was drawn.
func (a *Axes) Empty() bool { return len(a.series) == 0 }

// SetTitle sets the axes title.
func (a *Axes) SetTitle(title string) { a.title = title }

// Title returns the axes title.
func (a *Axes) Title() string { return a.title }

// SetXLabel sets the x axis label.
func (a *Axes) SetXLabel(label string) { a.xlabel = label }

// XLabel returns the x axis label.
func (a *Axes) XLabel() string { return a.xlabel }

// SetYLabel sets the y axis label.
func (a *Axes) SetYLabel(label string) { a.ylabel = label }

// YLabel returns the y axis label.
func (a *Axes) YLabel() string { return a.ylabel }

// SetXLim fixes the x axis range.
func (a *Axes) SetXLim(min, max float64) { a.xlim = &Limits{Min: min, Max: max} }

// XLim returns the explicit x range, if any.
func (a *Axes) XLim() (Limits, bool) {
	if a.xlim == nil {
		return Limits{}, false
	}
	return *a.xlim, true
}

// SetYLim fixes the y axis range.
func (a *Axes) SetYLim(min, max float64) { a.ylim = &Limits{Min: min, Max: max} }

// YLim returns the explicit y range, if any.
func (a *Axes) YLim() (Limits, bool) {
	if a.ylim == nil {
		return Limits{}, false
	}
	return *a.ylim, true
}

// Legend toggles the legend.
func (a *Axes) Legend(show bool) { a.legend = show }

// ShowLegend reports whether a legend is requested.
func (a *Axes) ShowLegend() bool { return a.legend }
