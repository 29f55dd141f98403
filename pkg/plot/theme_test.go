package plot_test

import theme "github.com/goliatone/go-theme"

func testTheme() *theme.Selection {
	return &theme.Selection{
		Theme: "mono",
		Manifest: &theme.Manifest{
			Name:    "mono",
			Version: "0.1.0",
			Tokens: map[string]string{
				"plot.color.1":    "#101010",
				"plot.color.2":    "#202020",
				"plot.background": "#fafafa",
			},
		},
	}
}
