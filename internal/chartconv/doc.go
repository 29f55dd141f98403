// Package chartconv turns figure axes into go-chart charts. The raster and
// vector renderers share it so both formats draw the same picture.
package chartconv
