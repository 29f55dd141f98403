package cli

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-djmpl"
	"github.com/goliatone/go-djmpl/internal/logging"
	"github.com/goliatone/go-djmpl/internal/server"
	"github.com/goliatone/go-djmpl/pkg/config"
	"github.com/goliatone/go-djmpl/pkg/engines"
	"github.com/goliatone/go-djmpl/pkg/render/template"
	"github.com/goliatone/go-djmpl/pkg/view"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plot pages backed by a sqlite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings := settingsFromContext(ctx)
			if addr != "" {
				settings.Server.Addr = addr
			}

			srv, cleanup, err := buildServer(ctx, settings)
			if err != nil {
				return err
			}
			defer cleanup()

			return srv.ListenAndServe(ctx, settings.Server.Addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.addr)")
	return cmd
}

// buildServer opens the database, seeds it and mounts the demo views.
func buildServer(ctx context.Context, settings *config.Settings) (*server.Server, func(), error) {
	logger := logging.FromContext(ctx)

	db, err := openDB(settings.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	cleanup := func() { _ = db.Close() }

	if err := seedDemo(ctx, db); err != nil {
		cleanup()
		return nil, nil, err
	}

	cfg, err := settings.PlotConfig()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	backend := settings.DefaultTemplateEngine()
	renderer, err := pageRenderer(settings, backend)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	srv := server.New(logger)
	target := &dashboard{db: db}
	views := map[string]string{
		"samples": `^DrawSamples$`,
		"regions": `^DrawRegions$`,
	}
	for name, pattern := range views {
		v := &view.View{
			Config:            cfg,
			PlotFormat:        settings.Format,
			TemplateEngine:    backend,
			TightLayout:       true,
			DrawMethodPattern: regexp.MustCompile(pattern),
			Template:          "page",
		}
		if err := srv.Mount(name, view.NewHandler(v, target, renderer)); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	logger.Debug("mounted views", "names", srv.Names(), "engine", backend, "format", settings.Format)
	return srv, cleanup, nil
}

// pageRenderer uses the configured template dir when it exists, and the
// embedded demo pages otherwise.
func pageRenderer(settings *config.Settings, backend string) (template.TemplateRenderer, error) {
	if len(settings.Templates) > 0 {
		if dir := settings.Templates[0].Dir; dir != "" {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return engines.NewRenderer(backend, engines.Source{Dir: dir})
			}
		}
	}

	files, err := djmpl.PageTemplates(backend)
	if err != nil {
		return nil, err
	}
	return engines.NewRenderer(backend, engines.Source{Files: files})
}
