// Package config loads process-wide djmpl settings from YAML or TOML and
// turns them into an explicit plot.Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-djmpl/pkg/markup"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings is the root configuration structure.
type Settings struct {
	Format         string           `yaml:"format" toml:"format"`
	TemplateEngine string           `yaml:"template_engine" toml:"template_engine"`
	Templates      []TemplateConfig `yaml:"templates" toml:"templates"`
	PlotlySrc      string           `yaml:"plotly_src" toml:"plotly_src"`
	Palette        []string         `yaml:"palette" toml:"palette"`
	Figure         FigureConfig     `yaml:"figure" toml:"figure"`
	Theme          ThemeConfig      `yaml:"theme" toml:"theme"`
	Server         ServerConfig     `yaml:"server" toml:"server"`
	Database       string           `yaml:"database" toml:"database"`
}

// TemplateConfig declares one host template backend. The first entry is the
// default engine for plots.
type TemplateConfig struct {
	Backend string `yaml:"backend" toml:"backend"`
	Dir     string `yaml:"dir" toml:"dir"`
}

// FigureConfig holds default subplot geometry.
type FigureConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	DPI    float64 `yaml:"dpi" toml:"dpi"`
}

// ThemeConfig describes an inline go-theme manifest for plot colors.
type ThemeConfig struct {
	Name     string                       `yaml:"name" toml:"name"`
	Version  string                       `yaml:"version" toml:"version"`
	Variant  string                       `yaml:"variant" toml:"variant"`
	Tokens   map[string]string            `yaml:"tokens" toml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants" toml:"variants"`
}

// ServerConfig holds HTTP settings for the demo server.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Format: markup.DefaultFormat.String(),
		Templates: []TemplateConfig{
			{Backend: "django", Dir: "templates"},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: "file:djmpl.db",
	}
}

// Load reads settings from path. The extension picks the decoder: .toml uses
// TOML, anything else YAML.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data on top of Default() and validates the result.
func Parse(data []byte, ext string) (*Settings, error) {
	settings := Default()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if _, err := toml.Decode(string(data), settings); err != nil {
			return nil, fmt.Errorf("config: parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the format and every engine identifier.
func (s *Settings) Validate() error {
	if s.Format != "" {
		if _, err := markup.ParseFormat(s.Format); err != nil {
			return fmt.Errorf("%w: format: %w", ErrInvalidSettings, err)
		}
	}
	if s.TemplateEngine != "" {
		if _, err := markup.ResolveEngine(s.TemplateEngine); err != nil {
			return fmt.Errorf("%w: template_engine: %w", ErrInvalidSettings, err)
		}
	}
	for i, tpl := range s.Templates {
		if _, err := markup.ResolveEngine(tpl.Backend); err != nil {
			return fmt.Errorf("%w: templates[%d]: %w", ErrInvalidSettings, i, err)
		}
	}
	if s.Figure.Width < 0 || s.Figure.Height < 0 || s.Figure.DPI < 0 {
		return fmt.Errorf("%w: figure size must not be negative", ErrInvalidSettings)
	}
	return nil
}

// DefaultTemplateEngine returns template_engine, or the first configured
// template backend, or "" when neither is set.
func (s *Settings) DefaultTemplateEngine() string {
	if s.TemplateEngine != "" {
		return s.TemplateEngine
	}
	if len(s.Templates) > 0 {
		return s.Templates[0].Backend
	}
	return ""
}
