package view

import (
	"context"
	"reflect"
	"regexp"

	"github.com/goliatone/go-djmpl/pkg/figure"
)

// DefaultDrawMethodPattern selects exported methods named Draw*.
var DefaultDrawMethodPattern = regexp.MustCompile(`^Draw`)

// DrawMethod draws into a plot. data is the merged draw context.
type DrawMethod func(ctx context.Context, fig *figure.Figure, axes *figure.Grid, data map[string]any) error

// NamedDrawMethod is a discovered draw method.
type NamedDrawMethod struct {
	Name string
	Draw DrawMethod
}

// DrawContexter is implemented by targets that pass extra values to every
// draw method.
type DrawContexter interface {
	DrawContext(ctx context.Context) map[string]any
}

// DiscoverDrawMethods returns the exported methods of target whose name
// matches pattern and whose signature matches DrawMethod, in name order.
// Methods with another signature are ignored.
func DiscoverDrawMethods(target any, pattern *regexp.Regexp) []NamedDrawMethod {
	if target == nil {
		return nil
	}
	if pattern == nil {
		pattern = DefaultDrawMethodPattern
	}

	value := reflect.ValueOf(target)
	typ := value.Type()

	var out []NamedDrawMethod
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		if !pattern.MatchString(method.Name) {
			continue
		}
		fn, ok := value.Method(i).Interface().(func(context.Context, *figure.Figure, *figure.Grid, map[string]any) error)
		if !ok {
			continue
		}
		out = append(out, NamedDrawMethod{Name: method.Name, Draw: fn})
	}
	return out
}
