// Package plot wraps a figure with a validated output format and template
// engine, and renders it as an HTML fragment marked safe for that engine.
//
// Construct plots with Subplots, draw on Plot.Axes(), then call ToHTML:
//
//	p, err := plot.Subplots(cfg, plot.WithFormat("svg"), plot.WithTemplateEngine("django"))
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	_ = p.Axes().Single().Plot(xs, ys)
//	fragment, err := p.ToHTML(ctx)
package plot
