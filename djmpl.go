// Package djmpl renders plots as HTML fragments that page templates embed
// without escaping. It fronts pkg/plot and pkg/config for callers that want
// a single import.
package djmpl

import (
	"context"

	"github.com/goliatone/go-djmpl/pkg/config"
	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/plot"
)

// Plot aliases plot.Plot.
type Plot = plot.Plot

// Config aliases plot.Config.
type Config = plot.Config

// Option aliases plot.Option.
type Option = plot.Option

// Format aliases markup.Format.
type Format = markup.Format

// DrawFunc draws into a fresh figure.
type DrawFunc func(fig *figure.Figure, axes *figure.Grid) error

// Subplots exposes plot.Subplots from the top-level module.
func Subplots(cfg Config, options ...Option) (*Plot, error) {
	return plot.Subplots(cfg, options...)
}

// WithFormat forwards to plot.WithFormat.
func WithFormat(format string) Option { return plot.WithFormat(format) }

// WithTemplateEngine forwards to plot.WithTemplateEngine.
func WithTemplateEngine(engine string) Option { return plot.WithTemplateEngine(engine) }

// WithFigure forwards to plot.WithFigure.
func WithFigure(opts figure.Options) Option { return plot.WithFigure(opts) }

// LoadConfig reads a YAML or TOML settings file and builds the plot
// configuration from it.
func LoadConfig(path string) (Config, error) {
	settings, err := config.Load(path)
	if err != nil {
		return Config{}, err
	}
	return settings.PlotConfig()
}

// RenderHTML allocates a plot, lets draw fill it, and returns the safe
// markup for the configured engine. The figure is closed before returning.
func RenderHTML(ctx context.Context, cfg Config, draw DrawFunc, options ...Option) (any, error) {
	p, err := plot.Subplots(cfg, options...)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	if draw != nil {
		if err := draw(p.FigAxes()); err != nil {
			return nil, err
		}
	}
	return p.ToHTML(ctx)
}
