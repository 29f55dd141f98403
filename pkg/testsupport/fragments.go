package testsupport

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a parsed plot container.
type Fragment struct {
	Root *html.Node
}

// ParseContainer parses markup that must consist of exactly one root <div>.
func ParseContainer(t *testing.T, markup string) Fragment {
	t.Helper()

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Type != html.ElementNode || nodes[0].Data != "div" {
		t.Fatalf("expected a single root div, got %d nodes", len(nodes))
	}
	return Fragment{Root: nodes[0]}
}

// Classes returns the class list of the root element.
func (f Fragment) Classes() []string {
	for _, attr := range f.Root.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// Children returns the direct child nodes of the root, text and comments
// included.
func (f Fragment) Children() []*html.Node {
	var out []*html.Node
	for child := f.Root.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}

// LastChildTag returns the tag of the last child element, or "" when the last
// child is not an element.
func (f Fragment) LastChildTag() string {
	last := f.Root.LastChild
	if last == nil || last.Type != html.ElementNode {
		return ""
	}
	return last.Data
}

// Attr returns an attribute of the n-th child.
func (f Fragment) Attr(index int, key string) string {
	children := f.Children()
	if index < 0 || index >= len(children) {
		return ""
	}
	for _, attr := range children[index].Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
