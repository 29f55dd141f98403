package render

import (
	"context"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// Renderer converts a figure into a byte representation (PNG, SVG, script
// markup). Name matches the plot format the renderer serves.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, fig *figure.Figure) ([]byte, error)
}

// Func adapts a plain function into a Renderer. Handy for tests and for
// wrapping third-party exporters.
type Func struct {
	FormatName string
	MIME       string
	Fn         func(ctx context.Context, fig *figure.Figure) ([]byte, error)
}

func (f Func) Name() string        { return f.FormatName }
func (f Func) ContentType() string { return f.MIME }

func (f Func) Render(ctx context.Context, fig *figure.Figure) ([]byte, error) {
	return f.Fn(ctx, fig)
}

// Prepare runs the checks every renderer performs before drawing: context
// cancellation and closed figures. A nil context is rejected.
func Prepare(ctx context.Context, fig *figure.Figure) error {
	if ctx == nil {
		return ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if fig == nil {
		return ErrNilFigure
	}
	return fig.Err()
}
