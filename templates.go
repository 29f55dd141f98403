package djmpl

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-djmpl/pkg/markup"
)

//go:embed templates
var embeddedTemplates embed.FS

// PageTemplates exposes the built-in demo page ("page") for backend, a
// canonical engine key or alias, so hosts can serve plots without writing
// templates first.
func PageTemplates(backend string) (fs.FS, error) {
	key, err := markup.ResolveEngine(backend)
	if err != nil {
		return nil, err
	}

	var dir string
	switch key {
	case markup.EnginePongo2:
		dir = "templates/django"
	case markup.EngineGonja:
		dir = "templates/jinja2"
	case markup.EngineHTMLTemplate:
		dir = "templates/go"
	default:
		return nil, fmt.Errorf("djmpl: no page templates for %q", key)
	}
	return fs.Sub(embeddedTemplates, dir)
}
