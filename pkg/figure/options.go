package figure

// Default figure geometry, in inches and dots per inch.
const (
	DefaultWidthInches  = 6.4
	DefaultHeightInches = 4.8
	DefaultDPI          = 100.0
)

// DefaultPalette is the series color cycle used when Options.Palette is empty.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Options describes the subplot grid and figure geometry. The zero value is a
// single 6.4x4.8in axes at 100 DPI.
type Options struct {
	// Rows and Cols size the axes grid. Zero means one.
	Rows int
	Cols int
	// FigSize is width and height in inches.
	FigSize [2]float64
	// DPI converts inches to pixels.
	DPI float64
	// Title is drawn above the whole grid.
	Title string
	// Palette is the color cycle applied to series without an explicit color.
	Palette []string
	// Background fills the figure canvas. Empty means white.
	Background string
	// Extra carries renderer specific settings (for example "png.scale")
	// that have no typed field.
	Extra map[string]any
}

func (o Options) withDefaults() Options {
	if o.Rows == 0 {
		o.Rows = 1
	}
	if o.Cols == 0 {
		o.Cols = 1
	}
	if o.FigSize[0] == 0 {
		o.FigSize[0] = DefaultWidthInches
	}
	if o.FigSize[1] == 0 {
		o.FigSize[1] = DefaultHeightInches
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	return o
}
