// Package cli implements the djmpl command-line interface.
//
// Commands:
//   - render: draw a demo figure and print its HTML fragment
//   - serve: serve plot pages backed by a sqlite database
//   - engines: list template engines and their aliases
//
// All commands accept --verbose (-v) for debug logging and --config to load
// settings from a YAML or TOML file. The logger travels in the command
// context.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-djmpl/internal/logging"
	"github.com/goliatone/go-djmpl/pkg/config"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	version = v
}

type settingsKey struct{}

func withSettings(ctx context.Context, settings *config.Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, settings)
}

func settingsFromContext(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok && s != nil {
		return s
	}
	return config.Default()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "djmpl",
		Short:        "Render plots as embeddable HTML fragments",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(verbose))
			ctx := logging.WithLogger(cmd.Context(), logger)

			settings := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				settings = loaded
				logger.Debug("loaded settings", "path", configPath)
			}

			cmd.SetContext(withSettings(ctx, settings))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (.yaml or .toml)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newEnginesCmd())
	return root
}

// Execute runs the CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
