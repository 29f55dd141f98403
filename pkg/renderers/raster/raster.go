// Package raster renders figures as PNG images.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/goliatone/go-djmpl/internal/chartconv"
	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/render"
)

// ExtraScale is the figure.Options.Extra key overriding the output scale.
const ExtraScale = "png.scale"

type Option func(*config)

type config struct {
	scale float64
}

// WithScale resizes the composed image by factor (1 keeps the figure size).
func WithScale(factor float64) Option {
	return func(cfg *config) {
		if factor > 0 {
			cfg.scale = factor
		}
	}
}

// Renderer draws each axes with go-chart and pastes the cells onto one
// canvas.
type Renderer struct {
	scale float64
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the PNG renderer.
func New(options ...Option) *Renderer {
	cfg := config{scale: 1}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{scale: cfg.scale}
}

func (r *Renderer) Name() string {
	return "png"
}

func (r *Renderer) ContentType() string {
	return "image/png"
}

func (r *Renderer) Render(ctx context.Context, fig *figure.Figure) ([]byte, error) {
	if err := render.Prepare(ctx, fig); err != nil {
		return nil, fmt.Errorf("raster renderer: %w", err)
	}

	img, err := r.compose(ctx, fig)
	if err != nil {
		return nil, err
	}

	if scale := r.scaleFor(fig); scale != 1 {
		width := int(math.Round(float64(img.Bounds().Dx()) * scale))
		if width < 1 {
			width = 1
		}
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("raster renderer: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) compose(ctx context.Context, fig *figure.Figure) (*image.NRGBA, error) {
	width, height := fig.Size()
	canvas := imaging.New(width, height, chartconv.Color(fig.Background()))

	cells, top := chartconv.Layout(fig)
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("raster renderer: %w", err)
		}

		var buf bytes.Buffer
		drawable := chartconv.Convert(fig, cell, chartconv.Options{})
		if err := drawable.Render(chart.PNG, &buf); err != nil {
			return nil, fmt.Errorf("raster renderer: draw axes (%d,%d): %w", cell.Axes.Row(), cell.Axes.Col(), err)
		}
		tile, err := imaging.Decode(&buf)
		if err != nil {
			return nil, fmt.Errorf("raster renderer: decode axes (%d,%d): %w", cell.Axes.Row(), cell.Axes.Col(), err)
		}
		canvas = imaging.Paste(canvas, tile, image.Pt(cell.X, cell.Y))
	}

	if top > 0 {
		drawTitle(canvas, fig.Title(), top)
	}
	return canvas, nil
}

func (r *Renderer) scaleFor(fig *figure.Figure) float64 {
	if value, ok := fig.Extra(ExtraScale); ok {
		switch v := value.(type) {
		case float64:
			if v > 0 {
				return v
			}
		case int:
			if v > 0 {
				return float64(v)
			}
		}
	}
	return r.scale
}

// drawTitle centers the figure title in the band above the grid.
func drawTitle(canvas *image.NRGBA, title string, band int) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: face}

	textWidth := drawer.MeasureString(title).Ceil()
	x := (canvas.Bounds().Dx() - textWidth) / 2
	if x < 0 {
		x = 0
	}
	ascent := face.Metrics().Ascent.Ceil()
	y := (band + ascent) / 2

	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(title)
}
