package markup

import "strings"

// EngineKey is the canonical identifier of a templating backend.
type EngineKey string

// Canonical keys for the templating ecosystems shipped with djmpl.
const (
	EnginePongo2       EngineKey = "github.com/flosch/pongo2"
	EngineGonja        EngineKey = "github.com/nikolalohinski/gonja"
	EngineHTMLTemplate EngineKey = "html/template"
	EngineString       EngineKey = "str"
)

// DefaultAliases maps convenience names to canonical keys. Lookups are made
// with the lower-cased input.
var DefaultAliases = map[string]EngineKey{
	"django": EnginePongo2,
	"pongo2": EnginePongo2,
	"jinja2": EngineGonja,
	"gonja":  EngineGonja,
	"go":     EngineHTMLTemplate,
	"html":   EngineHTMLTemplate,
	"str":    EngineString,
}

// Escaper marks an already escaped fragment as safe for one templating
// ecosystem. The returned value is that ecosystem's safe string type.
type Escaper interface {
	Key() EngineKey
	MarkSafe(markup string) any
}

// EscaperFunc adapts a function to the Escaper interface.
type EscaperFunc struct {
	EngineKey EngineKey
	Mark      func(string) any
}

// Key implements Escaper.
func (f EscaperFunc) Key() EngineKey { return f.EngineKey }

// MarkSafe implements Escaper.
func (f EscaperFunc) MarkSafe(markup string) any {
	if f.Mark == nil {
		return markup
	}
	return f.Mark(markup)
}

type stringEscaper struct{}

// String is the identity escaper registered under EngineString.
var String Escaper = stringEscaper{}

func (stringEscaper) Key() EngineKey { return EngineString }

func (stringEscaper) MarkSafe(markup string) any { return markup }

// ResolveEngine resolves name against the built-in canonical keys and
// DefaultAliases without consulting a Registry.
func ResolveEngine(name string) (EngineKey, error) {
	switch key := EngineKey(name); key {
	case EnginePongo2, EngineGonja, EngineHTMLTemplate, EngineString:
		return key, nil
	}
	if key, ok := DefaultAliases[strings.ToLower(name)]; ok {
		return key, nil
	}
	return "", &EngineNotSupportedError{Name: name}
}
