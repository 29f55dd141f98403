package chartconv

import (
	"math"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// TitleHeight is the band reserved above the grid for the figure title, at
// 100 DPI.
const TitleHeight = 28

// Cell places one axes on the figure canvas, in pixels.
type Cell struct {
	Axes   *figure.Axes
	X      int
	Y      int
	Width  int
	Height int
}

// Layout splits the figure canvas into one cell per axes. The second return
// value is the height reserved for the figure title.
func Layout(fig *figure.Figure) ([]Cell, int) {
	width, height := fig.Size()
	grid := fig.Axes()

	top := 0
	if fig.Title() != "" {
		top = int(math.Round(TitleHeight * fig.DPI() / figure.DefaultDPI))
		if top >= height {
			top = 0
		}
	}

	cellW := width / grid.Cols()
	cellH := (height - top) / grid.Rows()

	cells := make([]Cell, 0, grid.Len())
	for _, ax := range grid.Flat() {
		cells = append(cells, Cell{
			Axes:   ax,
			X:      ax.Col() * cellW,
			Y:      top + ax.Row()*cellH,
			Width:  cellW,
			Height: cellH,
		})
	}
	return cells, top
}
