// Package template defines the host template engine seam. Subpackages wrap
// pongo2 (django), gonja (jinja2) and html/template (gohtml) and each ships
// the markup.Escaper matching its safe string type.
package template
