package main

import (
	"fmt"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/palette"
	"github.com/spf13/cobra"
)

var legendFlags graphFlags

func init() {
	legendFlags.register(legendCmd)
	rootCmd.AddCommand(legendCmd)
}

// LegendResult is the response for the legend command.
type LegendResult struct {
	Property string          `json:"property"`
	Default  string          `json:"default"`
	Entries  []palette.Entry `json:"entries"`
}

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Show the page colors of the color property",
	Long: `Show which color each value of the color property gets.

Colors are assigned in the order values are first seen in the records and
cycle through the palette; pages without a value get the default color.

Examples:
  ngraph legend --color Status --human`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := legendFlags.mustLoad(cmd)
		if in.opts.ColorProperty == "" {
			exitWithError(ExitConfigError, "no color property\n\nPass --color or run 'ngraph config color-property <name>'.")
		}

		result := LegendResult{
			Property: in.opts.ColorProperty,
			Default:  in.opts.Colors.Default(),
			Entries:  graph.Legend(in.records, in.opts.ColorProperty, in.cfg.Palette),
		}
		if !humanOutput {
			return outputJSON(result)
		}
		fmt.Printf("%s:\n", result.Property)
		for _, e := range result.Entries {
			fmt.Printf("  %s  %s\n", e.Color, e.Value)
		}
		fmt.Printf("  %s  (no value)\n", result.Default)
		return nil
	},
}
