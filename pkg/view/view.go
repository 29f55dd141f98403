// Package view injects plots into page template contexts. A target value
// supplies draw methods, discovered by name, and the View turns them into
// *plot.Plot values under a configurable context key.
package view

import (
	"context"
	"fmt"
	"regexp"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/plot"
)

const (
	// DefaultPlotName is the context key of the single plot.
	DefaultPlotName = "plot"
	// DefaultPlotsName is the context key of the plot sequence.
	DefaultPlotsName = "plots"
)

// View holds the plot knobs of a page.
type View struct {
	// Config is the process-wide plot configuration.
	Config plot.Config
	// PlotFormat defaults to png.
	PlotFormat string
	// TemplateEngine defaults to Config.TemplateEngine.
	TemplateEngine string
	// SubplotsOptions overrides Config.Figure when set.
	SubplotsOptions *figure.Options
	// TightLayout applies tight layout after drawing.
	TightLayout bool
	// DrawMethodPattern selects draw methods. Nil means ^Draw.
	DrawMethodPattern *regexp.Regexp
	// ContextPlotName is the key plots are injected under.
	ContextPlotName string
	// Multiple injects one plot per draw method instead of a single plot.
	Multiple bool
	// Template names the page template rendered by Handler.
	Template string
}

func (v *View) format() string {
	if v.PlotFormat != "" {
		return v.PlotFormat
	}
	return markup.FormatPNG.String()
}

// PlotName returns the context key plots are injected under.
func (v *View) PlotName() string {
	if v.ContextPlotName != "" {
		return v.ContextPlotName
	}
	if v.Multiple {
		return DefaultPlotsName
	}
	return DefaultPlotName
}

// GetPlot allocates a fresh plot with the view settings.
func (v *View) GetPlot() (*plot.Plot, error) {
	opts := []plot.Option{plot.WithFormat(v.format())}
	if v.TemplateEngine != "" {
		opts = append(opts, plot.WithTemplateEngine(v.TemplateEngine))
	}
	if v.SubplotsOptions != nil {
		opts = append(opts, plot.WithFigure(*v.SubplotsOptions))
	}
	return plot.Subplots(v.Config, opts...)
}

// ContextData copies base and adds the plots drawn by target.
//
// In single mode every draw method draws into one plot, stored under
// PlotName(). In multiple mode each draw method gets its own plot and the
// ordered []*plot.Plot is stored under PlotName(); with the default name the
// first plot is also stored under "plot".
//
// Callers own the returned plots and release them with Release.
func (v *View) ContextData(ctx context.Context, target any, base map[string]any) (map[string]any, error) {
	methods := DiscoverDrawMethods(target, v.DrawMethodPattern)
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %T has no draw methods", ErrImproperlyConfigured, target)
	}

	drawData := map[string]any{}
	for key, value := range base {
		drawData[key] = value
	}
	if contexter, ok := target.(DrawContexter); ok {
		for key, value := range contexter.DrawContext(ctx) {
			drawData[key] = value
		}
	}

	data := make(map[string]any, len(base)+2)
	for key, value := range base {
		data[key] = value
	}

	if !v.Multiple {
		p, err := v.draw(ctx, methods, drawData)
		if err != nil {
			return nil, err
		}
		data[v.PlotName()] = p
		return data, nil
	}

	plots := make([]*plot.Plot, 0, len(methods))
	for _, method := range methods {
		p, err := v.draw(ctx, []NamedDrawMethod{method}, drawData)
		if err != nil {
			closePlots(plots)
			return nil, err
		}
		plots = append(plots, p)
	}
	data[v.PlotName()] = plots
	if v.ContextPlotName == "" {
		data[DefaultPlotName] = plots[0]
	}
	return data, nil
}

func (v *View) draw(ctx context.Context, methods []NamedDrawMethod, data map[string]any) (*plot.Plot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := v.GetPlot()
	if err != nil {
		return nil, err
	}

	fig, axes := p.FigAxes()
	for _, method := range methods {
		if err := method.Draw(ctx, fig, axes, data); err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("view: %s: %w", method.Name, err)
		}
	}
	if v.TightLayout {
		fig.TightLayout()
	}
	return p, nil
}

// Plots collects every plot stored in data.
func Plots(data map[string]any) []*plot.Plot {
	seen := map[*plot.Plot]bool{}
	var out []*plot.Plot
	add := func(p *plot.Plot) {
		if p != nil && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, value := range data {
		switch v := value.(type) {
		case *plot.Plot:
			add(v)
		case []*plot.Plot:
			for _, p := range v {
				add(p)
			}
		}
	}
	return out
}

// Release closes every plot stored in data.
func Release(data map[string]any) {
	closePlots(Plots(data))
}

func closePlots(plots []*plot.Plot) {
	for _, p := range plots {
		_ = p.Close()
	}
}
