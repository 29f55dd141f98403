package manager

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryXY runs query and collects the first two columns of every row as
// float64 pairs.
func QueryXY(ctx context.Context, db *sql.DB, query string, args ...any) (x, y []float64, err error) {
	if db == nil {
		return nil, nil, fmt.Errorf("manager: database is required")
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("manager: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var xv, yv float64
		if err := rows.Scan(&xv, &yv); err != nil {
			return nil, nil, fmt.Errorf("manager: scan: %w", err)
		}
		x = append(x, xv)
		y = append(y, yv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("manager: rows: %w", err)
	}
	return x, y, nil
}

// QueryCategories collects (label, value) pairs for bar charts.
func QueryCategories(ctx context.Context, db *sql.DB, query string, args ...any) (labels []string, values []float64, err error) {
	if db == nil {
		return nil, nil, fmt.Errorf("manager: database is required")
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("manager: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var value float64
		if err := rows.Scan(&label, &value); err != nil {
			return nil, nil, fmt.Errorf("manager: scan: %w", err)
		}
		labels = append(labels, label)
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("manager: rows: %w", err)
	}
	return labels, values, nil
}
