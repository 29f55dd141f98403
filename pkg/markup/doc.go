// Package markup holds the static tables that gate plot rendering: the closed
// set of output formats, the canonical template engine keys with their short
// aliases, and the Escaper registry that marks rendered fragments as safe for
// a given templating ecosystem.
//
// Resolution is eager. Callers validate a format with ParseFormat and resolve
// an engine identifier with Registry.Resolve before any figure is allocated,
// so an invalid combination never produces a plot.
package markup
