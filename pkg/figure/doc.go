// Package figure is the drawing surface plots are rendered from. A Figure owns
// a Grid of Axes; callers draw on the axes (lines, scatter points, bars,
// labels) and hand the figure to a renderer for PNG, SVG or interactive output.
//
// Figures are allocated through a Registry, mirroring the figure manager of
// classic plotting libraries. The registry never frees a figure on its own:
// callers that create many figures (one per request, say) must Close them.
package figure
