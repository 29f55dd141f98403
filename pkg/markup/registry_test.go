package markup_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-djmpl/pkg/markup"
)

func newRegistry(t *testing.T) *markup.Registry {
	t.Helper()

	registry := markup.NewRegistry()
	registry.MustRegister(markup.String)
	registry.MustRegister(markup.EscaperFunc{EngineKey: markup.EnginePongo2})
	registry.MustRegister(markup.EscaperFunc{EngineKey: markup.EngineGonja})
	for name, key := range markup.DefaultAliases {
		if !registryHasKey(registry, key) {
			continue
		}
		if err := registry.Alias(name, key); err != nil {
			t.Fatalf("alias %q: %v", name, err)
		}
	}
	return registry
}

func registryHasKey(registry *markup.Registry, key markup.EngineKey) bool {
	for _, registered := range registry.List() {
		if registered == key {
			return true
		}
	}
	return false
}

func TestRegistry_ResolveCanonicalAndAliases(t *testing.T) {
	registry := newRegistry(t)

	cases := map[string]markup.EngineKey{
		string(markup.EnginePongo2): markup.EnginePongo2,
		string(markup.EngineGonja):  markup.EngineGonja,
		"str":                       markup.EngineString,
		"django":                    markup.EnginePongo2,
		"DJANGO":                    markup.EnginePongo2,
		"jinja2":                    markup.EngineGonja,
		"Jinja2":                    markup.EngineGonja,
	}
	for input, want := range cases {
		got, err := registry.Resolve(input)
		if err != nil {
			t.Fatalf("resolve %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("resolve %q: want %q, got %q", input, want, got)
		}
	}
}

func TestRegistry_ResolveIsIdempotent(t *testing.T) {
	registry := newRegistry(t)

	for _, input := range registry.Identifiers() {
		once, err := registry.Resolve(input)
		if err != nil {
			t.Fatalf("resolve %q: %v", input, err)
		}
		twice, err := registry.Resolve(string(once))
		if err != nil {
			t.Fatalf("resolve resolved %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("resolve not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	registry := newRegistry(t)

	_, err := registry.Resolve("%NOT-EXISTS%")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, markup.ErrEngineNotSupported) {
		t.Fatalf("expected ErrEngineNotSupported, got %v", err)
	}
	if !errors.Is(err, markup.ErrInvalidArgument) {
		t.Fatalf("engine errors should also be invalid-argument errors, got %v", err)
	}
	if errors.Is(err, markup.ErrInvalidFormat) {
		t.Fatalf("engine errors must not look like format errors")
	}

	var notSupported *markup.EngineNotSupportedError
	if !errors.As(err, &notSupported) {
		t.Fatalf("expected *EngineNotSupportedError, got %T", err)
	}
	if notSupported.Name != "%NOT-EXISTS%" {
		t.Fatalf("unexpected name %q", notSupported.Name)
	}
}

func TestRegistry_AliasRequiresRegisteredEngine(t *testing.T) {
	registry := markup.NewRegistry()
	if err := registry.Alias("go", markup.EngineHTMLTemplate); err == nil {
		t.Fatal("expected alias to unregistered engine to fail")
	}
}

func TestRegistry_RegisterRejectsDuplicates(t *testing.T) {
	registry := markup.NewRegistry()
	registry.MustRegister(markup.String)
	if err := registry.Register(markup.String); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil escaper to fail")
	}
}

func TestRegistry_GetAppliesEscaper(t *testing.T) {
	registry := newRegistry(t)

	escaper, err := registry.Get("str")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, ok := escaper.MarkSafe("<b>x</b>").(string)
	if !ok || got != "<b>x</b>" {
		t.Fatalf("str escaper should be the identity, got %#v", got)
	}
}

func TestRegistry_Identifiers(t *testing.T) {
	registry := newRegistry(t)

	want := []string{
		string(markup.EnginePongo2),
		string(markup.EngineGonja),
		"str",
		"django",
		"gonja",
		"jinja2",
		"pongo2",
		"str",
	}
	if diff := cmp.Diff(want, registry.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEngine_PackageLevel(t *testing.T) {
	for name, want := range markup.DefaultAliases {
		got, err := markup.ResolveEngine(name)
		if err != nil {
			t.Fatalf("resolve %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("resolve %q: want %q, got %q", name, want, got)
		}
	}
	if _, err := markup.ResolveEngine("mako"); !errors.Is(err, markup.ErrEngineNotSupported) {
		t.Fatalf("expected ErrEngineNotSupported, got %v", err)
	}
}
