package testsupport

import (
	"testing"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// NewFigure allocates a figure in a private registry and closes it when the
// test ends.
func NewFigure(t *testing.T, opts figure.Options) *figure.Figure {
	t.Helper()

	fig, err := figure.NewRegistry().New(opts)
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}
	t.Cleanup(func() { _ = fig.Close() })
	return fig
}

// DrawSine fills every axes of fig with a short line series.
func DrawSine(t *testing.T, fig *figure.Figure) {
	t.Helper()

	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0, 0.84, 0.91, 0.14, -0.76, -0.96}
	for _, ax := range fig.Axes().Flat() {
		if err := ax.Plot(x, y, figure.WithLabel("sin")); err != nil {
			t.Fatalf("plot: %v", err)
		}
	}
}
