package config

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/plot"
	"github.com/goliatone/go-djmpl/pkg/renderers/interactive"
)

// PlotConfig builds the explicit plot configuration. Every call creates fresh
// registries, so build it once at startup and share it.
func (s *Settings) PlotConfig() (plot.Config, error) {
	selection, err := s.ThemeSelection()
	if err != nil {
		return plot.Config{}, err
	}

	cfg := plot.Config{
		Format:         s.Format,
		TemplateEngine: s.DefaultTemplateEngine(),
		Figure: figure.Options{
			FigSize: [2]float64{s.Figure.Width, s.Figure.Height},
			DPI:     s.Figure.DPI,
			Palette: append([]string(nil), s.Palette...),
		},
		Theme:     selection,
		Renderers: plot.NewRenderers(interactive.WithPlotlySrc(s.PlotlySrc)),
	}
	return cfg, nil
}

// ThemeSelection registers the inline theme with a go-theme registry and
// returns the selection. No theme name means no selection.
func (s *Settings) ThemeSelection() (*theme.Selection, error) {
	if s.Theme.Name == "" {
		return nil, nil
	}

	manifest := &theme.Manifest{
		Name:    s.Theme.Name,
		Version: s.Theme.Version,
		Tokens:  s.Theme.Tokens,
	}
	if manifest.Version == "" {
		manifest.Version = "1.0.0"
	}
	if len(s.Theme.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(s.Theme.Variants))
		for name, tokens := range s.Theme.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}

	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("%w: theme: %w", ErrInvalidSettings, err)
	}

	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  s.Theme.Variant,
		Manifest: manifest,
	}, nil
}
