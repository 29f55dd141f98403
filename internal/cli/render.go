package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-djmpl/internal/logging"
	"github.com/goliatone/go-djmpl/internal/prompt"
	"github.com/goliatone/go-djmpl/pkg/config"
	"github.com/goliatone/go-djmpl/pkg/engines"
	"github.com/goliatone/go-djmpl/pkg/manager"
	"github.com/goliatone/go-djmpl/pkg/plot"
)

type renderOpts struct {
	format      string
	engine      string
	title       string
	template    string
	output      string
	interactive bool
	driver      prompt.Driver
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a demo figure and print its HTML fragment",
		Long: `Render draws a demo figure and prints the HTML fragment for the chosen
format. With --template the fragment is injected as "plot" into the given
page template, rendered by the chosen engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.interactive && opts.driver == nil {
				opts.driver = prompt.NewSurveyDriver()
			}
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: mpld3, svg or png")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "template engine key or alias")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "Damped wave", "figure title")
	cmd.Flags().StringVar(&opts.template, "template", "", "page template file to embed the plot into")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "ask for format, engine and title")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	settings := settingsFromContext(ctx)

	if opts.format == "" {
		opts.format = settings.Format
	}
	if opts.engine == "" {
		opts.engine = settings.DefaultTemplateEngine()
	}

	if opts.interactive {
		answers, err := prompt.AskPlotSettings(ctx, opts.driver, engines.Registry().Identifiers(), prompt.PlotSettings{
			Format: opts.format,
			Engine: opts.engine,
			Title:  opts.title,
		})
		if err != nil {
			return err
		}
		opts.format, opts.engine, opts.title = answers.Format, answers.Engine, answers.Title
	}

	rendered, err := renderDemo(ctx, settings, opts)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return err
	}
	if err := atomic.WriteFile(opts.output, strings.NewReader(rendered)); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	logger.Info("wrote plot", "path", opts.output, "format", opts.format, "bytes", len(rendered))
	return nil
}

func renderDemo(ctx context.Context, settings *config.Settings, opts renderOpts) (string, error) {
	cfg, err := settings.PlotConfig()
	if err != nil {
		return "", err
	}
	cfg.Figure.Title = opts.title

	m := manager.New(manager.WithConfig(cfg), manager.WithTemplateEngine(opts.engine))
	m.MustRegister(manager.DefaultDrawMethod, drawDemo)

	plots, err := m.PlotAll(ctx, opts.format, true)
	if err != nil {
		return "", err
	}
	defer func() {
		for _, p := range plots {
			_ = p.Close()
		}
	}()

	logging.FromContext(ctx).Debug("rendering", "format", plots[0].Format(), "engine", plots[0].TemplateEngine())

	if opts.template == "" {
		return plots[0].Render(ctx)
	}
	return renderPage(ctx, plots[0], opts)
}

func renderPage(ctx context.Context, p *plot.Plot, opts renderOpts) (string, error) {
	content, err := os.ReadFile(opts.template)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}

	renderer, err := engines.NewRenderer(opts.engine, engines.Source{Dir: filepath.Dir(opts.template)})
	if err != nil {
		return "", err
	}

	html, err := p.ToHTML(ctx)
	if err != nil {
		return "", err
	}
	return renderer.RenderString(string(content), map[string]any{
		"title": opts.title,
		"plot":  html,
	})
}
