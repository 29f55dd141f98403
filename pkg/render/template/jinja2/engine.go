// Package jinja2 renders Jinja2 templates with gonja and marks plot markup
// safe as a gonja value.
package jinja2

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nikolalohinski/gonja/v2"
	gonjaconfig "github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"

	"github.com/goliatone/go-djmpl/pkg/markup"
	"github.com/goliatone/go-djmpl/pkg/render/template"
)

// Escaper wraps fragments in exec.AsSafeValue.
var Escaper markup.Escaper = markup.EscaperFunc{
	EngineKey: markup.EngineGonja,
	Mark:      func(s string) any { return exec.AsSafeValue(s) },
}

// Option configures the gonja engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	autoEscape bool
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads template sources from an fs.FS. Templates loaded this way are
// compiled standalone, so include and extends are only available with
// WithBaseDir.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".j2" suffix appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithAutoEscape toggles HTML escaping of unmarked values. It is on by
// default.
func WithAutoEscape(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoEscape = enabled
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies template.TemplateRenderer using gonja.
type Engine struct {
	mu sync.RWMutex

	baseDir   string
	files     fs.FS
	tplExt    string
	config    *gonjaconfig.Config
	globals   map[string]any
	templates map[string]*exec.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A base dir or an fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".j2", autoEscape: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("jinja2: need to provide either base dir or fs.FS")
	}

	compile := gonjaconfig.New()
	compile.AutoEscape = cfg.autoEscape

	engine := &Engine{
		baseDir:   cfg.baseDir,
		files:     cfg.templates,
		tplExt:    cfg.extension,
		config:    compile,
		globals:   make(map[string]any),
		templates: make(map[string]*exec.Template),
	}
	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("jinja2: apply global data: %w", err)
	}
	return engine, nil
}

// Render treats name as inline source when it contains template tags.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if template.IsTemplateContent(name) {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate renders a named template, adding the extension when missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("jinja2: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", templatePath), out)
}

// RenderString compiles and renders inline template source.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("jinja2: engine is nil")
	}
	source := []byte(templateContent)
	tmpl, err := e.fromBytes(fmt.Sprintf("root-%x", sha256.Sum256(source)), source)
	if err != nil {
		return "", fmt.Errorf("jinja2: parse template string: %w", err)
	}
	return e.execute(tmpl, data, "template string", out)
}

// GlobalContext seeds values shared by every render.
func (e *Engine) GlobalContext(data any) error {
	if e == nil {
		return errors.New("jinja2: engine is nil")
	}
	if data == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals = template.MergeData(e.globals, data)
	return nil
}

func (e *Engine) execute(tmpl *exec.Template, data any, label string, out []io.Writer) (string, error) {
	e.mu.RLock()
	values := template.MergeData(e.globals, data)
	e.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, exec.NewContext(values)); err != nil {
		return "", fmt.Errorf("jinja2: execute %s: %w", label, err)
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out); err != nil {
		return "", err
	}
	return rendered, nil
}

func (e *Engine) getTemplate(path string) (*exec.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.load(path)
	if err != nil {
		return nil, fmt.Errorf("jinja2: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func (e *Engine) load(path string) (*exec.Template, error) {
	if e.baseDir != "" {
		tmpl, err := e.fromFile(filepath.Join(e.baseDir, filepath.FromSlash(path)))
		if err == nil || e.files == nil {
			return tmpl, err
		}
	}
	source, err := fs.ReadFile(e.files, path)
	if err != nil {
		return nil, err
	}
	return e.fromBytes(path, source)
}

func (e *Engine) fromFile(path string) (*exec.Template, error) {
	loader, err := loaders.NewFileSystemLoader(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return exec.NewTemplate(filepath.Base(path), e.config, loader, gonja.DefaultEnvironment)
}

// fromBytes compiles source under id; other names resolve against the
// working directory.
func (e *Engine) fromBytes(id string, source []byte) (*exec.Template, error) {
	loader, err := loaders.NewFileSystemLoader("")
	if err != nil {
		return nil, err
	}
	shifted, err := loaders.NewShiftedLoader(id, bytes.NewReader(source), loader)
	if err != nil {
		return nil, err
	}
	return exec.NewTemplate(id, e.config, shifted, gonja.DefaultEnvironment)
}
