package manager_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/manager"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/plot"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE samples (x REAL, y REAL)`,
		`INSERT INTO samples (x, y) VALUES (0, 1), (1, 3), (2, 2)`,
		`CREATE TABLE sales (region TEXT, total REAL)`,
		`INSERT INTO sales (region, total) VALUES ('north', 10), ('south', 4)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return db
}

func newManager(t *testing.T, options ...manager.Option) (*manager.Manager, *figure.Registry) {
	t.Helper()
	figures := figure.NewRegistry()
	cfg := plot.Config{Figures: figures, Figure: figure.Options{FigSize: [2]float64{3, 2}}}
	return manager.New(append([]manager.Option{manager.WithConfig(cfg)}, options...)...), figures
}

func TestGetDrawMethods_Default(t *testing.T) {
	m, _ := newManager(t)

	if _, err := m.GetDrawMethods(); !errors.Is(err, manager.ErrDrawNotImplemented) {
		t.Fatalf("expected ErrDrawNotImplemented, got %v", err)
	}

	m.MustRegister(manager.DefaultDrawMethod, func(context.Context, *figure.Figure, *figure.Grid) error { return nil })
	draws, err := m.GetDrawMethods()
	if err != nil {
		t.Fatalf("draw methods: %v", err)
	}
	if len(draws) != 1 {
		t.Fatalf("expected the default draw method, got %d", len(draws))
	}
}

func TestGetDrawMethods_Unknown(t *testing.T) {
	m, _ := newManager(t, manager.WithDrawMethods("missing"))
	if _, err := m.GetDrawMethods(); !errors.Is(err, manager.ErrUnknownDrawMethod) {
		t.Fatalf("expected ErrUnknownDrawMethod, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	m, _ := newManager(t)
	noop := func(context.Context, *figure.Figure, *figure.Grid) error { return nil }
	if err := m.Register("a", noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register("a", noop); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := m.Register("b", nil); err == nil {
		t.Fatal("expected nil draw func to fail")
	}
}

func TestPlotAll_FromDatabase(t *testing.T) {
	db := openDB(t)
	m, figures := newManager(t, manager.WithDB(db), manager.WithDrawMethods("samples", "sales"))

	m.MustRegister("samples", func(ctx context.Context, fig *figure.Figure, axes *figure.Grid) error {
		x, y, err := manager.QueryXY(ctx, m.DB(), `SELECT x, y FROM samples ORDER BY x`)
		if err != nil {
			return err
		}
		return axes.Single().Plot(x, y, figure.WithLabel("samples"))
	})
	m.MustRegister("sales", func(ctx context.Context, fig *figure.Figure, axes *figure.Grid) error {
		labels, values, err := manager.QueryCategories(ctx, m.DB(), `SELECT region, total FROM sales ORDER BY region`)
		if err != nil {
			return err
		}
		return axes.Single().Bar(labels, values)
	})

	plots, err := m.PlotAllDefault(context.Background())
	if err != nil {
		t.Fatalf("plot all: %v", err)
	}
	if len(plots) != 2 {
		t.Fatalf("expected 2 plots, got %d", len(plots))
	}
	if figures.Len() != 2 {
		t.Fatalf("expected one figure per draw method, got %d", figures.Len())
	}

	for _, p := range plots {
		if p.Format() != markup.FormatPNG {
			t.Fatalf("default format should be png, got %q", p.Format())
		}
		if !p.Figure().IsTight() {
			t.Fatal("default plot all should apply tight layout")
		}
	}

	series := plots[0].Axes().Single().Series()
	if diff := cmp.Diff([]float64{1, 3, 2}, series[0].Y); diff != "" {
		t.Fatalf("queried y mismatch (-want +got):\n%s", diff)
	}
	bars := plots[1].Axes().Single().Series()
	if diff := cmp.Diff([]string{"north", "south"}, bars[0].Categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	for _, p := range plots {
		if _, err := p.Render(context.Background()); err != nil {
			t.Fatalf("render: %v", err)
		}
		_ = p.Close()
	}
	if figures.Len() != 0 {
		t.Fatalf("figures should be released, %d open", figures.Len())
	}
}

func TestPlotAll_FailureClosesFigures(t *testing.T) {
	m, figures := newManager(t, manager.WithDrawMethods("ok", "broken"))
	boom := errors.New("boom")

	m.MustRegister("ok", func(context.Context, *figure.Figure, *figure.Grid) error { return nil })
	m.MustRegister("broken", func(context.Context, *figure.Figure, *figure.Grid) error { return boom })

	plots, err := m.PlotAll(context.Background(), "svg", false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected draw error, got %v", err)
	}
	if plots != nil {
		t.Fatal("no plots should be returned on failure")
	}
	if figures.Len() != 0 {
		t.Fatalf("figures leaked: %d", figures.Len())
	}
}

func TestGetPlot_Options(t *testing.T) {
	m, _ := newManager(t,
		manager.WithTemplateEngine("jinja2"),
		manager.WithFigure(figure.Options{Rows: 2, Cols: 1}),
	)

	p, err := m.GetPlot("mpld3")
	if err != nil {
		t.Fatalf("get plot: %v", err)
	}
	defer p.Close()

	if p.TemplateEngine() != markup.EngineGonja {
		t.Fatalf("engine %q", p.TemplateEngine())
	}
	if p.Axes().Rows() != 2 {
		t.Fatalf("rows %d", p.Axes().Rows())
	}

	if _, err := m.GetPlot("gif"); !errors.Is(err, markup.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestQueryXY_NoDatabase(t *testing.T) {
	if _, _, err := manager.QueryXY(context.Background(), nil, "SELECT 1"); err == nil {
		t.Fatal("expected error without database")
	}
}
