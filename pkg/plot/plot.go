package plot

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render"
)

// Option overrides Config defaults for one Subplots call.
type Option func(*options)

type options struct {
	format string
	engine string
	figure figure.Options
}

// WithFormat selects the output format ("mpld3", "svg" or "png").
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithTemplateEngine selects the template engine by key or alias.
func WithTemplateEngine(engine string) Option {
	return func(o *options) {
		o.engine = engine
	}
}

// WithFigure replaces the configured subplot options.
func WithFigure(opts figure.Options) Option {
	return func(o *options) {
		o.figure = opts
	}
}

// Plot bundles a figure with its axes, output format and template engine.
// It is immutable after construction.
type Plot struct {
	figure    *figure.Figure
	axes      *figure.Grid
	format    markup.Format
	engine    markup.EngineKey
	escaper   markup.Escaper
	renderers *render.Registry
}

// Subplots validates the format and engine, then allocates a figure with its
// axes grid. Nothing is allocated when validation fails.
func Subplots(cfg Config, opts ...Option) (*Plot, error) {
	o := options{format: cfg.format(), engine: cfg.templateEngine(), figure: cfg.Figure}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	format, err := markup.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	registry := cfg.engines()
	engine, err := registry.Resolve(o.engine)
	if err != nil {
		return nil, err
	}
	escaper, err := registry.Get(string(engine))
	if err != nil {
		return nil, err
	}

	figOpts := figure.ApplyTheme(o.figure, cfg.Theme)
	fig, err := cfg.figures().New(figOpts)
	if err != nil {
		return nil, fmt.Errorf("plot: subplots: %w", err)
	}

	return &Plot{
		figure:    fig,
		axes:      fig.Axes(),
		format:    format,
		engine:    engine,
		escaper:   escaper,
		renderers: cfg.renderers(),
	}, nil
}

// Figure returns the drawing surface.
func (p *Plot) Figure() *figure.Figure { return p.figure }

// Axes returns the axes grid paired with the figure.
func (p *Plot) Axes() *figure.Grid { return p.axes }

// FigAxes returns the figure and its axes, the pair handed to draw callables.
func (p *Plot) FigAxes() (*figure.Figure, *figure.Grid) { return p.figure, p.axes }

// Format returns the validated output format.
func (p *Plot) Format() markup.Format { return p.format }

// TemplateEngine returns the canonical engine key.
func (p *Plot) TemplateEngine() markup.EngineKey { return p.engine }

// Close releases the figure.
func (p *Plot) Close() error { return p.figure.Close() }

// Render produces the HTML fragment for the plot format. The figure is read
// on every call, so drawing after a render shows up in the next one.
func (p *Plot) Render(ctx context.Context) (string, error) {
	switch p.format {
	case markup.FormatMPLD3:
		return p.renderMPLD3(ctx)
	case markup.FormatSVG:
		return p.renderSVG(ctx)
	case markup.FormatPNG:
		return p.renderPNG(ctx)
	default:
		return "", fmt.Errorf("%w: %q", ErrNotImplemented, p.format)
	}
}

// ToHTML renders the plot and marks the result safe for the template engine.
// The dynamic type depends on the engine: *pongo2.Value, *exec.Value,
// template.HTML, or string for "str".
func (p *Plot) ToHTML(ctx context.Context) (any, error) {
	rendered, err := p.Render(ctx)
	if err != nil {
		return nil, err
	}
	return p.escaper.MarkSafe(rendered), nil
}

// HTML renders the plot as template.HTML whatever the configured engine.
func (p *Plot) HTML(ctx context.Context) (template.HTML, error) {
	rendered, err := p.Render(ctx)
	if err != nil {
		return "", err
	}
	return template.HTML(rendered), nil
}

func (p *Plot) renderPNG(ctx context.Context) (string, error) {
	data, err := p.draw(ctx, markup.FormatPNG)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return "<div class='djmpl djmpl-png'><img src='data:image/png;base64," + encoded + "'></div>", nil
}

func (p *Plot) renderSVG(ctx context.Context) (string, error) {
	data, err := p.draw(ctx, markup.FormatSVG)
	if err != nil {
		return "", err
	}
	return "<div class='djmpl djmpl-svg'>" + string(data) + "</div>", nil
}

func (p *Plot) renderMPLD3(ctx context.Context) (string, error) {
	data, err := p.draw(ctx, markup.FormatMPLD3)
	if err != nil {
		return "", err
	}
	return "<div class='djmpl djmpl-mpld3'>" + string(data) + "</div>", nil
}

func (p *Plot) draw(ctx context.Context, format markup.Format) ([]byte, error) {
	renderer, err := p.renderers.Get(format.String())
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	data, err := renderer.Render(ctx, p.figure)
	if err != nil {
		return nil, fmt.Errorf("plot: render %s: %w", format, err)
	}
	return data, nil
}
