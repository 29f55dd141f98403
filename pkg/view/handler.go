package view

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-djmpl/internal/logging"
	"github.com/goliatone/go-djmpl/pkg/plot"
	"github.com/goliatone/go-djmpl/pkg/render/template"
)

// HTMLSuffix is appended to the plot key for the rendered, safe markup.
const HTMLSuffix = "_html"

// TargetFunc returns the draw target for a request.
type TargetFunc func(r *http.Request) any

// Handler renders View.Template with the plots of a target.
type Handler struct {
	View     *View
	Target   TargetFunc
	Renderer template.TemplateRenderer
	// Logger overrides the logger found in the request context.
	Logger *log.Logger
}

// NewHandler serves a fixed target.
func NewHandler(v *View, target any, renderer template.TemplateRenderer) *Handler {
	return &Handler{
		View:     v,
		Target:   func(*http.Request) any { return target },
		Renderer: renderer,
	}
}

func (h *Handler) logger(ctx context.Context) *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logging.FromContext(ctx)
}

// ServeHTTP builds the context data, renders every plot and executes the
// page template. Figures are closed once the response is written.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger(ctx)
	start := time.Now()

	base := map[string]any{"path": r.URL.Path}
	data, err := h.View.ContextData(ctx, h.Target(r), base)
	if err != nil {
		logger.Error("build plot context", "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer Release(data)

	if err := h.addMarkup(ctx, data); err != nil {
		logger.Error("render plot", "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page, err := h.Renderer.RenderTemplate(h.View.Template, data)
	if err != nil {
		logger.Error("render template", "template", h.View.Template, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		logger.Debug("write response", "err", err)
		return
	}
	logger.Debug("rendered view", "template", h.View.Template, "plots", len(Plots(data)), "elapsed", time.Since(start).Round(time.Millisecond))
}

// addMarkup stores the safe markup of each plot next to it, so templates
// can print {{ plot_html }} without calling methods. A plot stored under
// several keys is rendered once.
func (h *Handler) addMarkup(ctx context.Context, data map[string]any) error {
	rendered := map[*plot.Plot]any{}
	markup := func(p *plot.Plot) (any, error) {
		if html, ok := rendered[p]; ok {
			return html, nil
		}
		html, err := p.ToHTML(ctx)
		if err != nil {
			return nil, err
		}
		rendered[p] = html
		return html, nil
	}

	extra := map[string]any{}
	for key, value := range data {
		switch v := value.(type) {
		case *plot.Plot:
			html, err := markup(v)
			if err != nil {
				return err
			}
			extra[key+HTMLSuffix] = html
		case []*plot.Plot:
			list := make([]any, 0, len(v))
			for _, p := range v {
				html, err := markup(p)
				if err != nil {
					return err
				}
				list = append(list, html)
			}
			extra[key+HTMLSuffix] = list
		}
	}
	for key, value := range extra {
		data[key] = value
	}
	return nil
}
