package chartconv

import (
	"html"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// Drawable is implemented by chart.Chart and chart.BarChart.
type Drawable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Options tunes a conversion.
type Options struct {
	// EscapeText HTML-escapes titles and labels. The SVG writer emits text
	// verbatim so vector output needs it; raster output must not.
	EscapeText bool
}

// Color parses a hex color ("#1f77b4" or "1f77b4"). Empty input is
// transparent.
func Color(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(hex)
}

// Convert builds the chart for one axes sized to cell. Axes holding only bar
// series become a chart.BarChart; everything else is a chart.Chart.
func Convert(fig *figure.Figure, cell Cell, opts Options) Drawable {
	ax := cell.Axes
	series := ax.Series()

	if len(series) > 0 && allBars(series) {
		return convertBars(fig, cell, series, opts)
	}

	text := textFunc(opts)
	ch := &chart.Chart{
		Title:      text(ax.Title()),
		Width:      cell.Width,
		Height:     cell.Height,
		DPI:        fig.DPI(),
		Background: chart.Style{FillColor: Color(fig.Background()), Padding: padding(fig)},
		Canvas:     chart.Style{FillColor: Color(fig.Background())},
		XAxis:      chart.XAxis{Name: text(ax.XLabel())},
		YAxis:      chart.YAxis{Name: text(ax.YLabel())},
	}
	if ax.Title() == "" {
		ch.TitleStyle = chart.Style{Hidden: true}
	}

	for i, s := range series {
		ch.Series = append(ch.Series, continuous(fig, i, s, text))
	}

	xr, yr := dataRanges(series)
	if lim, ok := ax.XLim(); ok {
		xr = Range{Min: lim.Min, Max: lim.Max}
	}
	if lim, ok := ax.YLim(); ok {
		yr = Range{Min: lim.Min, Max: lim.Max}
	}
	xr, yr = xr.widen(), yr.widen()
	ch.XAxis.Range = &chart.ContinuousRange{Min: xr.Min, Max: xr.Max}
	ch.YAxis.Range = &chart.ContinuousRange{Min: yr.Min, Max: yr.Max}

	if len(ch.Series) == 0 {
		// go-chart refuses to draw a chart without series.
		ch.Series = []chart.Series{placeholder(xr, yr)}
	}
	if ax.ShowLegend() && hasLabels(series) {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch
}

func convertBars(fig *figure.Figure, cell Cell, series []figure.Series, opts Options) Drawable {
	ax := cell.Axes
	text := textFunc(opts)

	var bars []chart.Value
	for i, s := range series {
		color := s.Color
		if color == "" {
			color = fig.ColorFor(i)
		}
		for j, value := range s.Y {
			label := ""
			if j < len(s.Categories) {
				label = s.Categories[j]
			}
			bars = append(bars, chart.Value{
				Value: value,
				Label: text(label),
				Style: chart.Style{FillColor: Color(color), StrokeColor: Color(color)},
			})
		}
	}

	bc := &chart.BarChart{
		Title:      text(ax.Title()),
		Width:      cell.Width,
		Height:     cell.Height,
		DPI:        fig.DPI(),
		Background: chart.Style{FillColor: Color(fig.Background()), Padding: padding(fig)},
		Canvas:     chart.Style{FillColor: Color(fig.Background())},
		YAxis:      chart.YAxis{Name: text(ax.YLabel())},
		Bars:       bars,
	}
	if ax.Title() == "" {
		bc.TitleStyle = chart.Style{Hidden: true}
	}
	if len(bars) > 0 {
		// Leave as much room between bars as each bar takes.
		bc.BarWidth = max(1, cell.Width/(2*len(bars)+1))
		bc.BarSpacing = bc.BarWidth
	}
	_, yr := dataRanges(series)
	if lim, ok := ax.YLim(); ok {
		yr = Range{Min: lim.Min, Max: lim.Max}
	}
	yr.Min = math.Min(yr.Min, 0)
	yr = yr.widen()
	bc.YAxis.Range = &chart.ContinuousRange{Min: yr.Min, Max: yr.Max}
	return bc
}

func continuous(fig *figure.Figure, index int, s figure.Series, text func(string) string) chart.Series {
	color := s.Color
	if color == "" {
		color = fig.ColorFor(index)
	}
	x, y := s.X, s.Y
	if s.Kind == figure.KindBar {
		x = make([]float64, len(s.Y))
		for i := range x {
			x[i] = float64(i)
		}
	}

	style := chart.Style{StrokeColor: Color(color), StrokeWidth: s.Width}
	switch s.Kind {
	case figure.KindScatter, figure.KindBar:
		width := s.Width
		if width == 0 {
			width = 4
		}
		style = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    width,
			DotColor:    Color(color),
		}
	default:
		if style.StrokeWidth == 0 {
			style.StrokeWidth = 1.5
		}
	}

	return chart.ContinuousSeries{
		Name:    text(s.Label),
		XValues: x,
		YValues: y,
		Style:   style,
	}
}

func placeholder(xr, yr Range) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{xr.Min, xr.Max},
		YValues: []float64{yr.Min, yr.Max},
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: chart.Disabled,
		},
	}
}

func padding(fig *figure.Figure) chart.Box {
	if fig.IsTight() {
		return chart.Box{Top: 8, Left: 8, Right: 8, Bottom: 8}
	}
	return chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}
}

func textFunc(opts Options) func(string) string {
	if opts.EscapeText {
		return html.EscapeString
	}
	return func(s string) string { return s }
}

func allBars(series []figure.Series) bool {
	for _, s := range series {
		if s.Kind != figure.KindBar {
			return false
		}
	}
	return true
}

func hasLabels(series []figure.Series) bool {
	for _, s := range series {
		if s.Label != "" {
			return true
		}
	}
	return false
}
