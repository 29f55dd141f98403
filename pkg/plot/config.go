package plot

import (
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-djmpl/pkg/engines"
	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render"
	"github.com/goliatone/go-djmpl/pkg/renderers/interactive"
	"github.com/goliatone/go-djmpl/pkg/renderers/raster"
	"github.com/goliatone/go-djmpl/pkg/renderers/vector"
)

// DefaultTemplateEngine is used when Config.TemplateEngine is empty. Hosts
// normally set it to their first configured template backend.
const DefaultTemplateEngine = markup.EnginePongo2

// Config is the process-wide plot configuration. It is built once at startup
// and passed explicitly to Subplots and the integration adapters.
type Config struct {
	// Format is the default output format. Empty means markup.DefaultFormat.
	Format string
	// TemplateEngine is the default engine key or alias.
	TemplateEngine string
	// Figure holds the default subplot options.
	Figure figure.Options
	// Theme fills empty palette and background options.
	Theme *theme.Selection

	// Engines resolves engine names. Nil uses the shared engines.Registry().
	Engines *markup.Registry
	// Figures tracks allocated figures. Nil uses figure.Default.
	Figures *figure.Registry
	// Renderers maps formats to renderers. Nil uses DefaultRenderers().
	Renderers *render.Registry
}

var (
	defaultsOnce     sync.Once
	defaultEngines   *markup.Registry
	defaultRenderers *render.Registry
)

func loadDefaults() {
	defaultsOnce.Do(func() {
		defaultEngines = engines.Registry()
		defaultRenderers = NewRenderers()
	})
}

// DefaultRenderers returns the shared renderer registry.
func DefaultRenderers() *render.Registry {
	loadDefaults()
	return defaultRenderers
}

// NewRenderers builds a registry with the png, svg and mpld3 renderers.
func NewRenderers(options ...interactive.Option) *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(raster.New())
	registry.MustRegister(vector.New())
	registry.MustRegister(interactive.New(options...))
	return registry
}

func (c Config) engines() *markup.Registry {
	if c.Engines != nil {
		return c.Engines
	}
	loadDefaults()
	return defaultEngines
}

func (c Config) figures() *figure.Registry {
	if c.Figures != nil {
		return c.Figures
	}
	return figure.Default
}

func (c Config) renderers() *render.Registry {
	if c.Renderers != nil {
		return c.Renderers
	}
	return DefaultRenderers()
}

func (c Config) format() string {
	if c.Format != "" {
		return c.Format
	}
	return markup.DefaultFormat.String()
}

func (c Config) templateEngine() string {
	if c.TemplateEngine != "" {
		return c.TemplateEngine
	}
	return string(DefaultTemplateEngine)
}
