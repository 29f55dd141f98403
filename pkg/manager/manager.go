// Package manager produces one plot per registered draw callable. It backs
// data oriented plot sources, typically fed from a database.
package manager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/plot"
)

// DefaultDrawMethod is used when DrawMethods is empty.
const DefaultDrawMethod = "draw_plot"

// DrawFunc draws into a freshly allocated figure and its axes.
type DrawFunc func(ctx context.Context, fig *figure.Figure, axes *figure.Grid) error

// Option configures a Manager.
type Option func(*Manager)

// WithConfig sets the plot configuration used for every plot.
func WithConfig(cfg plot.Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithFigure overrides the subplot options of cfg for this manager.
func WithFigure(opts figure.Options) Option {
	return func(m *Manager) {
		m.figure = &opts
	}
}

// WithTemplateEngine sets the engine for produced plots.
func WithTemplateEngine(engine string) Option {
	return func(m *Manager) {
		m.engine = engine
	}
}

// WithDrawMethods restricts and orders the draw callables used by PlotAll.
func WithDrawMethods(names ...string) Option {
	return func(m *Manager) {
		m.DrawMethods = append([]string(nil), names...)
	}
}

// WithDB attaches the database draw callables read from.
func WithDB(db *sql.DB) Option {
	return func(m *Manager) {
		m.db = db
	}
}

// Manager owns a set of named draw callables.
type Manager struct {
	// DrawMethods lists the callables to run, in order.
	DrawMethods []string

	mu     sync.RWMutex
	draws  map[string]DrawFunc
	config plot.Config
	figure *figure.Options
	engine string
	db     *sql.DB
}

// New creates a manager.
func New(options ...Option) *Manager {
	m := &Manager{draws: make(map[string]DrawFunc)}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Register adds a named draw callable.
func (m *Manager) Register(name string, fn DrawFunc) error {
	if name == "" {
		return fmt.Errorf("manager: draw method name is required")
	}
	if fn == nil {
		return fmt.Errorf("manager: draw method %q is nil", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.draws[name]; exists {
		return fmt.Errorf("manager: draw method %q already registered", name)
	}
	m.draws[name] = fn
	return nil
}

// MustRegister panics on registration failure.
func (m *Manager) MustRegister(name string, fn DrawFunc) {
	if err := m.Register(name, fn); err != nil {
		panic(err)
	}
}

// DB returns the attached database, or nil.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetDrawMethods resolves DrawMethods to callables. With no names configured
// the single default draw_plot is used.
func (m *Manager) GetDrawMethods() ([]DrawFunc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.DrawMethods) == 0 {
		fn, ok := m.draws[DefaultDrawMethod]
		if !ok {
			return nil, ErrDrawNotImplemented
		}
		return []DrawFunc{fn}, nil
	}

	out := make([]DrawFunc, 0, len(m.DrawMethods))
	for _, name := range m.DrawMethods {
		fn, ok := m.draws[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDrawMethod, name)
		}
		out = append(out, fn)
	}
	return out, nil
}

// GetPlot allocates a fresh plot in format.
func (m *Manager) GetPlot(format string) (*plot.Plot, error) {
	opts := []plot.Option{plot.WithFormat(format)}
	if m.engine != "" {
		opts = append(opts, plot.WithTemplateEngine(m.engine))
	}
	if m.figure != nil {
		opts = append(opts, plot.WithFigure(*m.figure))
	}
	return plot.Subplots(m.config, opts...)
}

// PlotAll runs every draw callable against its own fresh plot. When a draw
// fails, the plots allocated so far are closed and the error is returned.
func (m *Manager) PlotAll(ctx context.Context, format string, tightLayout bool) ([]*plot.Plot, error) {
	draws, err := m.GetDrawMethods()
	if err != nil {
		return nil, err
	}

	plots := make([]*plot.Plot, 0, len(draws))
	fail := func(err error) ([]*plot.Plot, error) {
		for _, p := range plots {
			_ = p.Close()
		}
		return nil, err
	}

	for i, draw := range draws {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		p, err := m.GetPlot(format)
		if err != nil {
			return fail(err)
		}
		plots = append(plots, p)

		fig, axes := p.FigAxes()
		if err := draw(ctx, fig, axes); err != nil {
			return fail(fmt.Errorf("manager: draw method %d: %w", i, err))
		}
		if tightLayout {
			fig.TightLayout()
		}
	}
	return plots, nil
}

// PlotAllDefault is PlotAll with png output and tight layout.
func (m *Manager) PlotAllDefault(ctx context.Context) ([]*plot.Plot, error) {
	return m.PlotAll(ctx, markup.FormatPNG.String(), true)
}
