// Package interactive renders figures as plotly.js fragments: a <style>
// node, the target <div>, and the <script> that boots the viewer.
package interactive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/render"
)

// DefaultPlotlySrc is loaded when the page has no window.Plotly yet.
const DefaultPlotlySrc = "https://cdn.plot.ly/plotly-2.29.1.min.js"

type Option func(*config)

type config struct {
	plotlySrc string
	newID     func() string
}

// WithPlotlySrc overrides the plotly.js URL, e.g. a self-hosted copy.
func WithPlotlySrc(src string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			cfg.plotlySrc = trimmed
		}
	}
}

// WithIDGenerator replaces the uuid based element ids.
func WithIDGenerator(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.newID = fn
		}
	}
}

// Renderer emits interactive plot fragments.
type Renderer struct {
	plotlySrc string
	newID     func() string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the interactive renderer.
func New(options ...Option) *Renderer {
	cfg := config{
		plotlySrc: DefaultPlotlySrc,
		newID:     func() string { return "djmpl-" + uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{plotlySrc: cfg.plotlySrc, newID: cfg.newID}
}

// Name is the plot format identifier served by this renderer.
func (r *Renderer) Name() string {
	return "mpld3"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// PlotlySrc returns the configured plotly.js URL.
func (r *Renderer) PlotlySrc() string {
	return r.plotlySrc
}

func (r *Renderer) Render(ctx context.Context, fig *figure.Figure) ([]byte, error) {
	if err := render.Prepare(ctx, fig); err != nil {
		return nil, fmt.Errorf("interactive renderer: %w", err)
	}

	id := r.newID()
	data, err := json.Marshal(buildPayload(id, fig))
	if err != nil {
		return nil, fmt.Errorf("interactive renderer: encode figure: %w", err)
	}
	src, err := json.Marshal(r.plotlySrc)
	if err != nil {
		return nil, fmt.Errorf("interactive renderer: encode plotly src: %w", err)
	}

	width, _ := fig.Size()
	cellWidth := width / fig.Axes().Cols()

	var out bytes.Buffer
	fmt.Fprintf(&out,
		`<style>#%[1]s{width:%[2]dpx;font-family:sans-serif}#%[1]s .djmpl-title{text-align:center;font-size:14px}#%[1]s .djmpl-axes{display:inline-block;vertical-align:top;width:%[3]dpx}</style>`,
		id, width, cellWidth)
	fmt.Fprintf(&out, `<div id="%s"></div>`, id)
	fmt.Fprintf(&out, `<script>%s(%s,%s);</script>`, bootScript, data, src)
	return out.Bytes(), nil
}

// bootScript loads plotly.js once per page and draws one plot per axes.
const bootScript = `(function(payload,src){` +
	`var draw=function(Plotly){` +
	`var root=document.getElementById(payload.id);if(!root){return;}` +
	`if(payload.title){var h=document.createElement("div");h.className="djmpl-title";h.innerHTML=payload.title;root.appendChild(h);}` +
	`(payload.axes||[]).forEach(function(ax){` +
	`var el=document.createElement("div");el.className="djmpl-axes";root.appendChild(el);` +
	`var layout=ax.figure.layout||{};layout.colorway=payload.colorway;` +
	`layout.paper_bgcolor=payload.background;layout.plot_bgcolor=payload.background;` +
	`if(ax.xlim){layout.xaxis=layout.xaxis||{};layout.xaxis.range=ax.xlim;}` +
	`if(ax.ylim){layout.yaxis=layout.yaxis||{};layout.yaxis.range=ax.ylim;}` +
	`Plotly.newPlot(el,ax.figure.data||[],layout);});};` +
	`if(window.Plotly){draw(window.Plotly);return;}` +
	`window.djmplPlotly=window.djmplPlotly||new Promise(function(resolve,reject){` +
	`var s=document.createElement("script");s.src=src;s.charset="utf-8";` +
	`s.onload=function(){resolve(window.Plotly);};s.onerror=reject;document.head.appendChild(s);});` +
	`window.djmplPlotly.then(draw);})`
