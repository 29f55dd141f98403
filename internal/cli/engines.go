package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-djmpl/pkg/engines"
)

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List template engines and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := engines.Registry()

			byKey := map[string][]string{}
			for alias, key := range registry.Aliases() {
				if alias == string(key) {
					continue
				}
				byKey[string(key)] = append(byKey[string(key)], alias)
			}

			out := cmd.OutOrStdout()
			for _, key := range registry.List() {
				aliases := byKey[string(key)]
				sort.Strings(aliases)
				if len(aliases) == 0 {
					fmt.Fprintln(out, key)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", key, strings.Join(aliases, ", "))
			}
			return nil
		},
	}
}
