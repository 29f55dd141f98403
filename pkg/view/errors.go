package view

import "errors"

// ErrImproperlyConfigured is returned when a view discovers no draw methods.
var ErrImproperlyConfigured = errors.New("view: improperly configured")
