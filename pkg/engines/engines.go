// Package engines wires the templating ecosystems shipped with djmpl: their
// escapers, the alias table, and host template engines.
package engines

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render/template"
	"github.com/goliatone/go-djmpl/pkg/render/template/django"
	"github.com/goliatone/go-djmpl/pkg/render/template/gohtml"
	"github.com/goliatone/go-djmpl/pkg/render/template/jinja2"
)

// Escapers returns the escapers for every supported engine.
func Escapers() []markup.Escaper {
	return []markup.Escaper{django.Escaper, jinja2.Escaper, gohtml.Escaper, markup.String}
}

// Registry builds a markup registry holding every escaper plus
// markup.DefaultAliases.
func Registry() *markup.Registry {
	registry := markup.NewRegistry()
	for _, escaper := range Escapers() {
		registry.MustRegister(escaper)
	}
	for alias, key := range markup.DefaultAliases {
		if err := registry.Alias(alias, key); err != nil {
			panic(err)
		}
	}
	return registry
}

// Source locates page templates for NewRenderer. Dir wins when both are set
// for engines that can only load from disk.
type Source struct {
	Dir   string
	Files fs.FS
}

// NewRenderer builds the host template engine for backend, a canonical key or
// alias. The str backend has no page engine.
func NewRenderer(backend string, source Source) (template.TemplateRenderer, error) {
	key, err := markup.ResolveEngine(backend)
	if err != nil {
		return nil, err
	}

	switch key {
	case markup.EnginePongo2:
		var options []django.Option
		if source.Dir != "" {
			options = append(options, django.WithBaseDir(source.Dir))
		}
		if source.Files != nil {
			options = append(options, django.WithFS(source.Files))
		}
		return django.New(options...)
	case markup.EngineGonja:
		var options []jinja2.Option
		if source.Dir != "" {
			options = append(options, jinja2.WithBaseDir(source.Dir))
		}
		if source.Files != nil {
			options = append(options, jinja2.WithFS(source.Files))
		}
		return jinja2.New(options...)
	case markup.EngineHTMLTemplate:
		var options []gohtml.Option
		if source.Files != nil {
			options = append(options, gohtml.WithFS(source.Files, "*.tmpl", "*.html"))
		} else if source.Dir != "" {
			options = append(options, gohtml.WithBaseDir(source.Dir, "*.tmpl", "*.html"))
		}
		return gohtml.New(options...)
	default:
		return nil, fmt.Errorf("engines: %q has no page template engine", key)
	}
}
