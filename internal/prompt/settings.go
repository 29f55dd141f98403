package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-djmpl/pkg/markup"
)

// PlotSettings are the answers of AskPlotSettings.
type PlotSettings struct {
	Format string
	Engine string
	Title  string
}

// AskPlotSettings asks for the output format, the template engine and a
// figure title. defaults pre-selects the matching options.
func AskPlotSettings(ctx context.Context, driver Driver, engines []string, defaults PlotSettings) (PlotSettings, error) {
	if driver == nil {
		return PlotSettings{}, fmt.Errorf("prompt: driver is required")
	}

	formats := make([]string, 0, len(markup.Formats()))
	for _, format := range markup.Formats() {
		formats = append(formats, format.String())
	}

	out := defaults

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Plot format",
		Options:      formats,
		DefaultIndex: indexOf(formats, defaults.Format),
		Help:         "png and svg are static, mpld3 is interactive",
	})
	if err != nil {
		return PlotSettings{}, err
	}
	if idx < 0 || idx >= len(formats) {
		return PlotSettings{}, fmt.Errorf("prompt: format selection %d out of range", idx)
	}
	out.Format = formats[idx]

	if len(engines) > 0 {
		idx, err = driver.Select(ctx, SelectConfig{
			Message:      "Template engine",
			Options:      engines,
			DefaultIndex: indexOf(engines, defaults.Engine),
			PageSize:     len(engines),
		})
		if err != nil {
			return PlotSettings{}, err
		}
		if idx < 0 || idx >= len(engines) {
			return PlotSettings{}, fmt.Errorf("prompt: engine selection %d out of range", idx)
		}
		out.Engine = engines[idx]
	}

	title, err := driver.Input(ctx, InputConfig{
		Message: "Figure title",
		Default: defaults.Title,
		Validator: func(s string) error {
			if len(strings.TrimSpace(s)) > 120 {
				return fmt.Errorf("title is too long")
			}
			return nil
		},
	})
	if err != nil {
		return PlotSettings{}, err
	}
	out.Title = strings.TrimSpace(title)
	return out, nil
}
