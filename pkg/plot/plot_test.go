package plot_test

import (
	"context"
	"errors"
	htmltemplate "html/template"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/goliatone/go-djmpl/pkg/engines"
	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/plot"
	"github.com/goliatone/go-djmpl/pkg/render"
	"github.com/goliatone/go-djmpl/pkg/testsupport"
)

func newConfig() (plot.Config, *figure.Registry) {
	figures := figure.NewRegistry()
	return plot.Config{Figures: figures, Figure: figure.Options{FigSize: [2]float64{3, 2}}}, figures
}

func subplots(t *testing.T, cfg plot.Config, opts ...plot.Option) *plot.Plot {
	t.Helper()
	p, err := plot.Subplots(cfg, opts...)
	if err != nil {
		t.Fatalf("subplots: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSubplots_EveryFormatAndEngine(t *testing.T) {
	cfg, _ := newConfig()
	registry := engines.Registry()

	for _, format := range markup.Formats() {
		for _, engine := range registry.Identifiers() {
			p := subplots(t, cfg, plot.WithFormat(format.String()), plot.WithTemplateEngine(engine))

			want, err := markup.ResolveEngine(engine)
			if err != nil {
				t.Fatalf("resolve %q: %v", engine, err)
			}
			if p.TemplateEngine() != want {
				t.Fatalf("%s/%s: engine %q, want %q", format, engine, p.TemplateEngine(), want)
			}
			if p.Format() != format {
				t.Fatalf("%s/%s: format %q", format, engine, p.Format())
			}
		}
	}
}

func TestSubplots_InvalidFormat(t *testing.T) {
	cfg, figures := newConfig()
	for _, engine := range engines.Registry().Identifiers() {
		_, err := plot.Subplots(cfg, plot.WithFormat("%NOT-EXISTS%"), plot.WithTemplateEngine(engine))
		if !errors.Is(err, markup.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", engine, err)
		}
		if errors.Is(err, markup.ErrEngineNotSupported) {
			t.Fatalf("%s: format errors must not look like engine errors", engine)
		}
	}
	if figures.Len() != 0 {
		t.Fatalf("validation failures allocated %d figures", figures.Len())
	}
}

func TestSubplots_UnsupportedEngine(t *testing.T) {
	cfg, figures := newConfig()
	for _, format := range markup.Formats() {
		_, err := plot.Subplots(cfg, plot.WithFormat(format.String()), plot.WithTemplateEngine("%NOT-EXISTS%"))
		var notSupported *markup.EngineNotSupportedError
		if !errors.As(err, &notSupported) {
			t.Fatalf("%s: expected EngineNotSupportedError, got %v", format, err)
		}
		if notSupported.Name != "%NOT-EXISTS%" {
			t.Fatalf("unexpected name %q", notSupported.Name)
		}
	}
	if figures.Len() != 0 {
		t.Fatalf("validation failures allocated %d figures", figures.Len())
	}
}

func TestSubplots_Defaults(t *testing.T) {
	cfg, figures := newConfig()
	p := subplots(t, cfg)

	if p.Format() != markup.FormatMPLD3 {
		t.Fatalf("default format %q", p.Format())
	}
	if p.TemplateEngine() != plot.DefaultTemplateEngine {
		t.Fatalf("default engine %q", p.TemplateEngine())
	}
	if figures.Len() != 1 {
		t.Fatalf("expected one open figure, got %d", figures.Len())
	}

	fig, axes := p.FigAxes()
	if fig != p.Figure() || axes != p.Axes() || axes != fig.Axes() {
		t.Fatal("FigAxes should return the wrapped pair")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if figures.Len() != 0 {
		t.Fatalf("close should release the figure")
	}
}

func TestSubplots_FigureOptions(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFigure(figure.Options{Rows: 2, Cols: 3}))
	if p.Axes().Rows() != 2 || p.Axes().Cols() != 3 {
		t.Fatalf("grid %dx%d", p.Axes().Rows(), p.Axes().Cols())
	}

	if _, err := plot.Subplots(cfg, plot.WithFigure(figure.Options{Rows: -1})); !errors.Is(err, figure.ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid, got %v", err)
	}
}

func TestToHTML_PNG(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFormat("png"), plot.WithTemplateEngine("str"))
	testsupport.DrawSine(t, p.Figure())

	value, err := p.ToHTML(context.Background())
	if err != nil {
		t.Fatalf("to html: %v", err)
	}
	markupString, ok := value.(string)
	if !ok {
		t.Fatalf("str engine should return string, got %T", value)
	}
	if !strings.HasPrefix(markupString, "<div class='djmpl djmpl-png'><img src='data:image/png;base64,") ||
		!strings.HasSuffix(markupString, "'></div>") {
		t.Fatalf("unexpected container %.80q", markupString)
	}

	fragment := testsupport.ParseContainer(t, markupString)
	if diff := cmp.Diff([]string{"djmpl", "djmpl-png"}, fragment.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	children := fragment.Children()
	if len(children) != 1 || children[0].Data != "img" {
		t.Fatalf("expected one img child, got %d", len(children))
	}
	if src := fragment.Attr(0, "src"); !strings.HasPrefix(src, "data:image/png;base64") {
		t.Fatalf("unexpected src %.40q", src)
	}
}

func TestToHTML_SVG(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFormat("svg"), plot.WithTemplateEngine("str"))
	testsupport.DrawSine(t, p.Figure())

	value, err := p.ToHTML(context.Background())
	if err != nil {
		t.Fatalf("to html: %v", err)
	}
	fragment := testsupport.ParseContainer(t, value.(string))
	if diff := cmp.Diff([]string{"djmpl", "djmpl-svg"}, fragment.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if n := len(fragment.Children()); n != 3 {
		t.Fatalf("expected 3 children, got %d", n)
	}
	if fragment.LastChildTag() != "svg" {
		t.Fatalf("last child %q, want svg", fragment.LastChildTag())
	}
}

func TestToHTML_MPLD3(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFormat("mpld3"), plot.WithTemplateEngine("str"))
	testsupport.DrawSine(t, p.Figure())

	value, err := p.ToHTML(context.Background())
	if err != nil {
		t.Fatalf("to html: %v", err)
	}
	fragment := testsupport.ParseContainer(t, value.(string))
	if diff := cmp.Diff([]string{"djmpl", "djmpl-mpld3"}, fragment.Classes()); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if n := len(fragment.Children()); n != 3 {
		t.Fatalf("expected 3 children, got %d", n)
	}
	if fragment.LastChildTag() != "script" {
		t.Fatalf("last child %q, want script", fragment.LastChildTag())
	}
}

func TestToHTML_SafeTypePerEngine(t *testing.T) {
	cfg, _ := newConfig()
	cfg.Format = "svg"

	texts := map[string]string{}
	checks := map[string]func(any) (string, bool){
		"django": func(v any) (string, bool) {
			value, ok := v.(*pongo2.Value)
			if !ok {
				return "", false
			}
			return value.String(), true
		},
		"jinja2": func(v any) (string, bool) {
			value, ok := v.(*exec.Value)
			if !ok {
				return "", false
			}
			return value.String(), true
		},
		"go": func(v any) (string, bool) {
			value, ok := v.(htmltemplate.HTML)
			return string(value), ok
		},
		"str": func(v any) (string, bool) {
			value, ok := v.(string)
			return value, ok
		},
	}

	for engine, check := range checks {
		p := subplots(t, cfg, plot.WithTemplateEngine(engine))
		testsupport.DrawSine(t, p.Figure())

		value, err := p.ToHTML(context.Background())
		if err != nil {
			t.Fatalf("%s: to html: %v", engine, err)
		}
		text, ok := check(value)
		if !ok {
			t.Fatalf("%s: unexpected safe type %T", engine, value)
		}
		texts[engine] = text
	}

	for engine, text := range texts {
		if text != texts["str"] {
			t.Fatalf("%s: textual content differs from str", engine)
		}
	}
}

func TestRender_ReadsCurrentFigure(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFormat("svg"), plot.WithTemplateEngine("go"))

	before, err := p.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	again, err := p.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if before != again {
		t.Fatal("render should be idempotent")
	}

	testsupport.DrawSine(t, p.Figure())
	after, err := p.HTML(context.Background())
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if string(after) == before {
		t.Fatal("render should pick up new drawing")
	}
}

func TestRender_ClosedFigure(t *testing.T) {
	cfg, _ := newConfig()
	p := subplots(t, cfg, plot.WithFormat("png"))
	_ = p.Close()
	if _, err := p.ToHTML(context.Background()); !errors.Is(err, figure.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestRender_NilContext(t *testing.T) {
	for _, format := range markup.Formats() {
		t.Run(format.String(), func(t *testing.T) {
			cfg, _ := newConfig()
			p := subplots(t, cfg, plot.WithFormat(format.String()))
			testsupport.DrawSine(t, p.Figure())
			//nolint:staticcheck
			if _, err := p.Render(nil); !errors.Is(err, render.ErrNilContext) {
				t.Fatalf("expected ErrNilContext, got %v", err)
			}
		})
	}
}

func TestSubplots_Theme(t *testing.T) {
	cfg, _ := newConfig()
	cfg.Theme = testTheme()
	p := subplots(t, cfg, plot.WithFormat("png"))

	if diff := cmp.Diff([]string{"#101010", "#202020"}, p.Figure().Palette()); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}
}
