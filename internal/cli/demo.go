package cli

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/manager"
)

// drawDemo draws a damped wave and its envelope.
func drawDemo(_ context.Context, fig *figure.Figure, axes *figure.Grid) error {
	const n = 50
	x := make([]float64, n)
	wave := make([]float64, n)
	envelope := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / 5
		envelope[i] = math.Exp(-x[i] / 4)
		wave[i] = envelope[i] * math.Sin(2*x[i])
	}

	ax := axes.Single()
	if err := ax.Plot(x, wave, figure.WithLabel("wave")); err != nil {
		return err
	}
	if err := ax.Plot(x, envelope, figure.WithLabel("envelope")); err != nil {
		return err
	}
	ax.SetXLabel("t")
	ax.Legend(true)
	return nil
}

var demoSchema = []string{
	`CREATE TABLE IF NOT EXISTS samples (x REAL NOT NULL, y REAL NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS sales (region TEXT NOT NULL, total REAL NOT NULL)`,
}

// seedDemo creates the demo tables and fills them when empty.
func seedDemo(ctx context.Context, db *sql.DB) error {
	for _, stmt := range demoSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < 24; i++ {
		x := float64(i)
		if _, err := tx.ExecContext(ctx, `INSERT INTO samples (x, y) VALUES (?, ?)`, x, 20+8*math.Sin(x/3)); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	for region, total := range map[string]float64{"north": 42, "south": 27, "east": 35, "west": 18} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sales (region, total) VALUES (?, ?)`, region, total); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return tx.Commit()
}

// dashboard exposes the demo draw methods to views.
type dashboard struct {
	db *sql.DB
}

func (d *dashboard) DrawContext(context.Context) map[string]any {
	return map[string]any{"unit": "ms"}
}

func (d *dashboard) DrawSamples(ctx context.Context, _ *figure.Figure, axes *figure.Grid, data map[string]any) error {
	x, y, err := manager.QueryXY(ctx, d.db, `SELECT x, y FROM samples ORDER BY x`)
	if err != nil {
		return err
	}
	ax := axes.Single()
	ax.SetTitle("Samples")
	ax.SetYLabel(fmt.Sprint(data["unit"]))
	return ax.Plot(x, y, figure.WithLabel("latency"))
}

func (d *dashboard) DrawRegions(ctx context.Context, _ *figure.Figure, axes *figure.Grid, _ map[string]any) error {
	labels, values, err := manager.QueryCategories(ctx, d.db, `SELECT region, total FROM sales ORDER BY region`)
	if err != nil {
		return err
	}
	ax := axes.Single()
	ax.SetTitle("Sales by region")
	return ax.Bar(labels, values)
}
