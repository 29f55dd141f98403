package figure

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token names read by ApplyTheme. Palette entries are numbered
// ("plot.color.1", "plot.color.2", ...) and applied in numeric order.
const (
	TokenColorPrefix = "plot.color."
	TokenBackground  = "plot.background"
)

// ApplyTheme fills empty Palette and Background fields from a go-theme
// selection. Variant tokens override the manifest tokens.
func ApplyTheme(opts Options, selection *theme.Selection) Options {
	tokens := selectionTokens(selection)
	if len(tokens) == 0 {
		return opts
	}

	if len(opts.Palette) == 0 {
		opts.Palette = paletteFromTokens(tokens)
	}
	if opts.Background == "" {
		opts.Background = tokens[TokenBackground]
	}
	return opts
}

func selectionTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

func paletteFromTokens(tokens map[string]string) []string {
	type entry struct {
		order int
		color string
	}
	var entries []entry
	for key, value := range tokens {
		if !strings.HasPrefix(key, TokenColorPrefix) {
			continue
		}
		order, err := strconv.Atoi(strings.TrimPrefix(key, TokenColorPrefix))
		if err != nil || strings.TrimSpace(value) == "" {
			continue
		}
		entries = append(entries, entry{order: order, color: strings.TrimSpace(value)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	palette := make([]string, 0, len(entries))
	for _, e := range entries {
		palette = append(palette, e.color)
	}
	return palette
}
