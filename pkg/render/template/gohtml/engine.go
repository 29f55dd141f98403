// Package gohtml renders html/template pages. Plot markup is marked safe as
// template.HTML.
package gohtml

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render/template"
)

// Escaper converts fragments to template.HTML.
var Escaper markup.Escaper = markup.EscaperFunc{
	EngineKey: markup.EngineHTMLTemplate,
	Mark:      func(s string) any { return htmltemplate.HTML(s) },
}

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	patterns  []string
	funcs     htmltemplate.FuncMap
	globals   map[string]any
}

// WithFS parses templates matching patterns (default "*.tmpl") from files.
func WithFS(files fs.FS, patterns ...string) Option {
	return func(cfg *config) {
		cfg.templates = files
		if len(patterns) > 0 {
			cfg.patterns = patterns
		}
	}
}

// WithBaseDir is WithFS over a directory on disk.
func WithBaseDir(dir string, patterns ...string) Option {
	return func(cfg *config) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return
		}
		WithFS(os.DirFS(dir), patterns...)(cfg)
	}
}

// WithFuncs registers template functions.
func WithFuncs(funcs htmltemplate.FuncMap) Option {
	return func(cfg *config) {
		if cfg.funcs == nil {
			cfg.funcs = htmltemplate.FuncMap{}
		}
		for name, fn := range funcs {
			cfg.funcs[name] = fn
		}
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		cfg.globals = template.MergeData(cfg.globals, data)
	}
}

// Engine satisfies template.TemplateRenderer using html/template.
type Engine struct {
	mu      sync.RWMutex
	root    *htmltemplate.Template
	funcs   htmltemplate.FuncMap
	globals map[string]any
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New parses the configured templates. Without WithFS the engine only renders
// inline strings.
func New(options ...Option) (*Engine, error) {
	cfg := &config{patterns: []string{"*.tmpl"}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	root := htmltemplate.New("djmpl").Funcs(cfg.funcs)
	if cfg.templates != nil {
		patterns, err := matchingPatterns(cfg.templates, cfg.patterns)
		if err != nil {
			return nil, err
		}
		if len(patterns) > 0 {
			parsed, err := root.ParseFS(cfg.templates, patterns...)
			if err != nil {
				return nil, fmt.Errorf("gohtml: parse templates: %w", err)
			}
			root = parsed
		}
	}

	return &Engine{
		root:    root,
		funcs:   cfg.funcs,
		globals: template.MergeData(nil, cfg.globals),
	}, nil
}

// Render treats name as inline source when it contains template actions.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if template.IsTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes a named template from the parsed set.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.root == nil {
		return "", errors.New("gohtml: engine is nil")
	}
	tmpl := e.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("gohtml: template %q not found", name)
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", name), out)
}

// RenderString parses and executes inline template source.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("gohtml: engine is nil")
	}
	tmpl, err := htmltemplate.New("inline").Funcs(e.funcs).Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("gohtml: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

// GlobalContext seeds values shared by every render.
func (e *Engine) GlobalContext(data any) error {
	if e == nil {
		return errors.New("gohtml: engine is nil")
	}
	if data == nil {
		return nil
	}
	e.mu.Lock()
	e.globals = template.MergeData(e.globals, data)
	e.mu.Unlock()
	return nil
}

func (e *Engine) execute(tmpl *htmltemplate.Template, data any, label string, out []io.Writer) (string, error) {
	e.mu.RLock()
	values := template.MergeData(e.globals, data)
	e.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("gohtml: execute %s: %w", label, err)
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out); err != nil {
		return "", err
	}
	return rendered, nil
}

// matchingPatterns drops patterns without matches, since ParseFS rejects them.
func matchingPatterns(files fs.FS, patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		matches, err := fs.Glob(files, pattern)
		if err != nil {
			return nil, fmt.Errorf("gohtml: pattern %q: %w", pattern, err)
		}
		if len(matches) > 0 {
			out = append(out, pattern)
		}
	}
	return out, nil
}
