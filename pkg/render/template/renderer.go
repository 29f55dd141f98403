package template

import (
	"io"
	"strings"
)

// TemplateRenderer is the seam views use to render pages, whatever engine
// backs them.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// IsTemplateContent reports whether s looks like inline template source
// rather than a template name.
func IsTemplateContent(s string) bool {
	return strings.Contains(s, "{{") || strings.Contains(s, "{%")
}

// WriteAll copies rendered output to every writer.
func WriteAll(rendered string, out []io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}

// MergeData overlays data on top of globals. Map data is merged key by key;
// other values are returned under the "data" key.
func MergeData(globals map[string]any, data any) map[string]any {
	out := make(map[string]any, len(globals)+1)
	for key, value := range globals {
		out[key] = value
	}
	switch v := data.(type) {
	case nil:
	case map[string]any:
		for key, value := range v {
			if key = strings.TrimSpace(key); key != "" {
				out[key] = value
			}
		}
	default:
		out["data"] = v
	}
	return out
}
