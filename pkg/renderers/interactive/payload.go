package interactive

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"github.com/goliatone/go-djmpl/internal/chartconv"
	"github.com/goliatone/go-djmpl/pkg/figure"
)

// payload is the JSON document handed to the boot script.
type payload struct {
	ID         string        `json:"id"`
	Title      string        `json:"title,omitempty"`
	Cols       int           `json:"cols"`
	Colorway   []string      `json:"colorway"`
	Background string        `json:"background"`
	Axes       []axesPayload `json:"axes"`
}

type axesPayload struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Figure *grob.Fig `json:"figure"`
	XLim   []float64 `json:"xlim,omitempty"`
	YLim   []float64 `json:"ylim,omitempty"`
}

func buildPayload(id string, fig *figure.Figure) payload {
	grid := fig.Axes()
	out := payload{
		ID:         id,
		Title:      sanitizeLabel(fig.Title()),
		Cols:       grid.Cols(),
		Colorway:   fig.Palette(),
		Background: fig.Background(),
	}

	cells, _ := chartconv.Layout(fig)
	for _, cell := range cells {
		ax := cell.Axes
		entry := axesPayload{
			Row:    ax.Row(),
			Col:    ax.Col(),
			Figure: axesFigure(fig, cell),
		}
		if lim, ok := ax.XLim(); ok {
			entry.XLim = []float64{lim.Min, lim.Max}
		}
		if lim, ok := ax.YLim(); ok {
			entry.YLim = []float64{lim.Min, lim.Max}
		}
		out.Axes = append(out.Axes, entry)
	}
	return out
}

func axesFigure(fig *figure.Figure, cell chartconv.Cell) *grob.Fig {
	ax := cell.Axes
	traces := grob.Traces{}
	for i, s := range ax.Series() {
		traces = append(traces, trace(fig, i, s))
	}

	layout := &grob.Layout{
		Width:      float64(cell.Width),
		Height:     float64(cell.Height),
		Showlegend: grob.False,
	}
	if ax.ShowLegend() {
		layout.Showlegend = grob.True
	}
	if title := sanitizeLabel(ax.Title()); title != "" {
		layout.Title = &grob.LayoutTitle{Text: title}
	}
	if label := sanitizeLabel(ax.XLabel()); label != "" {
		layout.Xaxis = &grob.LayoutXaxis{Title: &grob.LayoutXaxisTitle{Text: label}}
	}
	if label := sanitizeLabel(ax.YLabel()); label != "" {
		layout.Yaxis = &grob.LayoutYaxis{Title: &grob.LayoutYaxisTitle{Text: label}}
	}
	return &grob.Fig{Data: traces, Layout: layout}
}

func trace(fig *figure.Figure, index int, s figure.Series) grob.Trace {
	color := s.Color
	if color == "" {
		color = fig.ColorFor(index)
	}
	name := sanitizeLabel(s.Label)

	switch s.Kind {
	case figure.KindBar:
		return &grob.Bar{
			Type:   grob.TraceTypeBar,
			Name:   name,
			X:      s.Categories,
			Y:      s.Y,
			Marker: &grob.BarMarker{Color: color},
		}
	case figure.KindScatter:
		return &grob.Scatter{
			Type:   grob.TraceTypeScatter,
			Name:   name,
			X:      s.X,
			Y:      s.Y,
			Mode:   grob.ScatterModeMarkers,
			Marker: &grob.ScatterMarker{Color: color},
		}
	default:
		width := s.Width
		if width == 0 {
			width = 1.5
		}
		return &grob.Scatter{
			Type: grob.TraceTypeScatter,
			Name: name,
			X:    s.X,
			Y:    s.Y,
			Mode: grob.ScatterModeLines,
			Line: &grob.ScatterLine{Color: color, Width: width},
		}
	}
}
