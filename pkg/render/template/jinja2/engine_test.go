package jinja2_test

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/nikolalohinski/gonja/v2/exec"

	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render/template/jinja2"
	"github.com/goliatone/go-djmpl/pkg/testsupport"
)

const fragment = `<div class='djmpl djmpl-png'><img src='data:image/png;base64,AA=='></div>`

func TestEscaper_MarksSafe(t *testing.T) {
	if jinja2.Escaper.Key() != markup.EngineGonja {
		t.Fatalf("unexpected key %q", jinja2.Escaper.Key())
	}
	value, ok := jinja2.Escaper.MarkSafe(fragment).(*exec.Value)
	if !ok {
		t.Fatalf("expected *exec.Value, got %T", jinja2.Escaper.MarkSafe(fragment))
	}
	if value.String() != fragment {
		t.Fatalf("safe value changed the markup: %q", value.String())
	}
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine, err := jinja2.New(jinja2.WithBaseDir("testdata/templates"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("plot", map[string]any{
			"title": "plots",
			"plot":  jinja2.Escaper.MarkSafe(fragment),
		}, w)
	})

	want := "<section>plots</section>" + fragment
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_FSAndGlobals(t *testing.T) {
	files := fstest.MapFS{
		"page.j2": &fstest.MapFile{Data: []byte("{{ site }}:{{ page }}")},
	}
	engine, err := jinja2.New(jinja2.WithFS(files), jinja2.WithGlobalData(map[string]any{"site": "demo"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.Render("page", map[string]any{"page": "plots"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "demo:plots" {
		t.Fatalf("unexpected output %q", result)
	}

	inline, err := engine.Render("{{ site }}!", nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if inline != "demo!" {
		t.Fatalf("unexpected inline output %q", inline)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := jinja2.New(); err == nil {
		t.Fatal("expected an error without templates")
	}
}

func TestEngine_AutoEscapesUnmarkedValues(t *testing.T) {
	files := fstest.MapFS{
		"page.j2": &fstest.MapFile{Data: []byte("{{ title }}|{{ plot }}")},
	}
	engine, err := jinja2.New(jinja2.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.Render("page", map[string]any{
		"title": "<b>x</b>",
		"plot":  jinja2.Escaper.MarkSafe(fragment),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "&lt;b&gt;x&lt;/b&gt;|" + fragment
	if result != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, result)
	}

	raw, err := engine.RenderString("{{ plot }}", map[string]any{"plot": fragment})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if raw == fragment {
		t.Fatalf("plain strings must be escaped, got %q", raw)
	}
}

func TestEngine_AutoEscapeDisabled(t *testing.T) {
	files := fstest.MapFS{
		"page.j2": &fstest.MapFile{Data: []byte("{{ title }}")},
	}
	engine, err := jinja2.New(jinja2.WithFS(files), jinja2.WithAutoEscape(false))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	result, err := engine.Render("page", map[string]any{"title": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<b>x</b>" {
		t.Fatalf("unexpected output %q", result)
	}
}
