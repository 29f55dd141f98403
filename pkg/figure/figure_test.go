package figure_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

func TestNew_Defaults(t *testing.T) {
	registry := figure.NewRegistry()
	fig, err := registry.New(figure.Options{})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}

	width, height := fig.Size()
	if width != 640 || height != 480 {
		t.Fatalf("default size: want 640x480, got %dx%d", width, height)
	}
	if fig.Axes().Len() != 1 {
		t.Fatalf("default grid should hold one axes, got %d", fig.Axes().Len())
	}
	if diff := cmp.Diff(figure.DefaultPalette, fig.Palette()); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}
	if fig.Background() != "#ffffff" {
		t.Fatalf("unexpected background %q", fig.Background())
	}
}

func TestNew_Grid(t *testing.T) {
	registry := figure.NewRegistry()
	fig, err := registry.New(figure.Options{Rows: 2, Cols: 3, FigSize: [2]float64{9, 6}, DPI: 50})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}

	grid := fig.Axes()
	if grid.Rows() != 2 || grid.Cols() != 3 || grid.Len() != 6 {
		t.Fatalf("unexpected grid %dx%d (%d)", grid.Rows(), grid.Cols(), grid.Len())
	}
	ax := grid.At(1, 2)
	if ax == nil || ax.Row() != 1 || ax.Col() != 2 {
		t.Fatalf("At(1,2) returned %+v", ax)
	}
	if grid.At(2, 0) != nil {
		t.Fatalf("out of range At should return nil")
	}
	if grid.Flat()[5] != ax {
		t.Fatalf("Flat should be row-major")
	}
	width, height := fig.Size()
	if width != 450 || height != 300 {
		t.Fatalf("size: want 450x300, got %dx%d", width, height)
	}
}

func TestNew_InvalidGrid(t *testing.T) {
	registry := figure.NewRegistry()
	for _, opts := range []figure.Options{
		{Rows: -1},
		{Cols: -2},
		{FigSize: [2]float64{-1, 2}},
		{DPI: -10},
	} {
		if _, err := registry.New(opts); !errors.Is(err, figure.ErrInvalidGrid) {
			t.Fatalf("%+v: expected ErrInvalidGrid, got %v", opts, err)
		}
	}
	if registry.Len() != 0 {
		t.Fatalf("failed constructions must not register figures")
	}
}

func TestAxes_Drawing(t *testing.T) {
	fig, err := figure.NewRegistry().New(figure.Options{})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}
	ax := fig.Axes().Single()
	if !ax.Empty() {
		t.Fatal("fresh axes should be empty")
	}

	if err := ax.Plot([]float64{0, 1, 2}, []float64{1, 2, 3}, figure.WithLabel("line"), figure.WithColor("#000000")); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if err := ax.Scatter([]float64{1}, []float64{1, 2}); !errors.Is(err, figure.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if err := ax.Bar([]string{"a", "b"}, []float64{3, 4}); err != nil {
		t.Fatalf("bar: %v", err)
	}
	if err := ax.PlotY([]float64{5, 6}); err != nil {
		t.Fatalf("plot y: %v", err)
	}

	series := ax.Series()
	if len(series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(series))
	}
	want := []figure.SeriesKind{figure.KindLine, figure.KindBar, figure.KindLine}
	for i, s := range series {
		if s.Kind != want[i] {
			t.Fatalf("series %d: want %s, got %s", i, want[i], s.Kind)
		}
	}
	if series[0].Label != "line" || series[0].Color != "#000000" {
		t.Fatalf("series options not applied: %+v", series[0])
	}
	if diff := cmp.Diff([]float64{0, 1}, series[2].X); diff != "" {
		t.Fatalf("PlotY x mismatch (-want +got):\n%s", diff)
	}

	ax.SetXLim(-1, 1)
	if lim, ok := ax.XLim(); !ok || lim.Min != -1 || lim.Max != 1 {
		t.Fatalf("unexpected xlim %+v %v", lim, ok)
	}
	if _, ok := ax.YLim(); ok {
		t.Fatal("ylim should be unset")
	}
}

func TestAxes_DrawingAfterClose(t *testing.T) {
	fig, err := figure.NewRegistry().New(figure.Options{Rows: 1, Cols: 2})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}
	ax := fig.Axes().At(0, 1)
	_ = fig.Close()

	if err := ax.Plot([]float64{0}, []float64{1}); !errors.Is(err, figure.ErrClosed) {
		t.Fatalf("expected ErrClosed from plot, got %v", err)
	}
	if err := ax.Bar([]string{"a"}, []float64{1}); !errors.Is(err, figure.ErrClosed) {
		t.Fatalf("expected ErrClosed from bar, got %v", err)
	}
	if !ax.Empty() {
		t.Fatal("closed axes should stay empty")
	}
}

func TestFigure_ColorCycle(t *testing.T) {
	fig, err := figure.NewRegistry().New(figure.Options{Palette: []string{"#111111", "#222222"}})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}
	got := []string{fig.ColorFor(0), fig.ColorFor(1), fig.ColorFor(2)}
	if diff := cmp.Diff([]string{"#111111", "#222222", "#111111"}, got); diff != "" {
		t.Fatalf("color cycle mismatch (-want +got):\n%s", diff)
	}
}

func TestFigure_Extra(t *testing.T) {
	fig, err := figure.NewRegistry().New(figure.Options{Extra: map[string]any{"png.scale": 2.0}})
	if err != nil {
		t.Fatalf("new figure: %v", err)
	}
	if value, ok := fig.Extra("png.scale"); !ok || value != 2.0 {
		t.Fatalf("extra not forwarded: %v %v", value, ok)
	}
	if _, ok := fig.Extra("missing"); ok {
		t.Fatal("missing extra should not resolve")
	}
}
