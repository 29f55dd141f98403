package figure

// Grid is the axes collection of a figure, stored row-major.
type Grid struct {
	rows int
	cols int
	axes []*Axes
	// closed mirrors the owning figure so axes refuse new series.
	closed bool
}

func newGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols, axes: make([]*Axes, 0, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.axes = append(g.axes, &Axes{grid: g, row: r, col: c})
		}
	}
	return g
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of axes.
func (g *Grid) Len() int { return len(g.axes) }

// At returns the axes at row r and column c, or nil when out of range.
func (g *Grid) At(r, c int) *Axes {
	if r < 0 || c < 0 || r >= g.rows || c >= g.cols {
		return nil
	}
	return g.axes[r*g.cols+c]
}

// Single returns the first axes. Convenient for 1x1 figures.
func (g *Grid) Single() *Axes {
	return g.axes[0]
}

// Flat returns all axes in row-major order.
func (g *Grid) Flat() []*Axes {
	out := make([]*Axes, len(g.axes))
	copy(out, g.axes)
	return out
}
