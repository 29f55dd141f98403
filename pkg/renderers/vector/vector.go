// Package vector renders figures as standalone SVG documents.
package vector

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/goliatone/go-djmpl/internal/chartconv"
	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/render"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="utf-8" standalone="no"?>`
	generator = `<!-- Created with go-djmpl (https://github.com/wcharczuk/go-chart) -->`
)

type Option func(*config)

type config struct {
	comment string
}

// WithComment replaces the generator comment written after the XML
// declaration. Empty keeps the default.
func WithComment(text string) Option {
	return func(cfg *config) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		cfg.comment = "<!-- " + strings.ReplaceAll(text, "--", "- -") + " -->"
	}
}

// Renderer writes an XML declaration, a generator comment, and one root
// <svg> element holding a translated group per axes.
type Renderer struct {
	comment string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the SVG renderer.
func New(options ...Option) *Renderer {
	cfg := config{comment: generator}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{comment: cfg.comment}
}

func (r *Renderer) Name() string {
	return "svg"
}

func (r *Renderer) ContentType() string {
	return "image/svg+xml"
}

func (r *Renderer) Render(ctx context.Context, fig *figure.Figure) ([]byte, error) {
	if err := render.Prepare(ctx, fig); err != nil {
		return nil, fmt.Errorf("vector renderer: %w", err)
	}

	width, height := fig.Size()
	var out bytes.Buffer
	out.WriteString(xmlHeader)
	out.WriteString(r.comment)
	fmt.Fprintf(&out,
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	fmt.Fprintf(&out, `<rect width="%d" height="%d" fill="%s"/>`, width, height, html.EscapeString(fig.Background()))

	cells, top := chartconv.Layout(fig)
	if top > 0 {
		fmt.Fprintf(&out,
			`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="14">%s</text>`,
			width/2, top/2, html.EscapeString(fig.Title()))
	}

	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("vector renderer: %w", err)
		}

		var buf bytes.Buffer
		drawable := chartconv.Convert(fig, cell, chartconv.Options{EscapeText: true})
		if err := drawable.Render(chart.SVG, &buf); err != nil {
			return nil, fmt.Errorf("vector renderer: draw axes (%d,%d): %w", cell.Axes.Row(), cell.Axes.Col(), err)
		}
		fmt.Fprintf(&out, `<g transform="translate(%d,%d)">`, cell.X, cell.Y)
		out.Write(bytes.TrimSpace(buf.Bytes()))
		out.WriteString(`</g>`)
	}

	out.WriteString(`</svg>`)
	return out.Bytes(), nil
}
