package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-djmpl/pkg/figure"
	"github.com/goliatone/go-djmpl/pkg/render"
	"github.com/goliatone/go-djmpl/pkg/testsupport"
)

func TestPrepare_Context(t *testing.T) {
	fig := testsupport.NewFigure(t, figure.Options{})

	if err := render.Prepare(context.Background(), fig); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	//nolint:staticcheck
	if err := render.Prepare(nil, fig); !errors.Is(err, render.ErrNilContext) {
		t.Fatalf("expected ErrNilContext, got %v", err)
	}
	if err := render.Prepare(context.Background(), nil); !errors.Is(err, render.ErrNilFigure) {
		t.Fatalf("expected ErrNilFigure, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := render.Prepare(ctx, fig); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
