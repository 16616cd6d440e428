package main

import (
	"fmt"
	"os"

	"github.com/matsen/notiongraph/internal/opener"
	"github.com/matsen/notiongraph/internal/viz"
	"github.com/spf13/cobra"
)

var vizOutput string
var vizLayout string
var vizTitle string
var vizOffline bool
var vizScriptPath string
var vizNoLabels bool
var vizDrop []string
var vizOpen bool
var vizFlags graphFlags

func init() {
	vizFlags.register(vizCmd)
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizLayout, "layout", "force", "Layout algorithm: force, circle, grid, concentric, or breadthfirst")
	vizCmd.Flags().StringVar(&vizTitle, "title", viz.DefaultTitle, "Page title")
	vizCmd.Flags().BoolVar(&vizOffline, "offline", false, "Bundle Cytoscape.js inline for offline use (needs --cytoscape-js)")
	vizCmd.Flags().StringVar(&vizScriptPath, "cytoscape-js", "", "Path to cytoscape.min.js for --offline")
	vizCmd.Flags().BoolVar(&vizNoLabels, "no-labels", false, "Hide node labels")
	vizCmd.Flags().StringSliceVar(&vizDrop, "drop", nil, "Node ids to leave out of the rendered graph")
	vizCmd.Flags().BoolVar(&vizOpen, "open", false, "Open the written file in the browser (needs --output)")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate an interactive graph visualization",
	Long: `Generate a self-contained HTML page showing the graph with Cytoscape.js.

Pages are circles colored by the color property, keywords are green
squares and property values are purple diamonds. Click a node to highlight
its neighborhood. A legend and a statistics panel are included.

Examples:
  # Generate HTML to stdout
  ngraph viz --props Tags --keywords > graph.html

  # Color by status, concentric layout
  ngraph viz --props Tags --color Status --layout concentric -o graph.html --open

  # Generate offline-capable HTML
  ngraph viz --offline --cytoscape-js ./cytoscape.min.js -o graph.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	if vizOpen && vizOutput == "" {
		exitWithError(ExitError, "--open needs --output")
	}

	in := vizFlags.mustLoad(cmd)
	g := in.build()
	if len(vizDrop) > 0 {
		g = g.WithoutNodes(vizDrop...)
	}

	opts := viz.HTMLOptions{
		Layout:         vizLayout,
		Title:          vizTitle,
		Offline:        vizOffline,
		Legend:         in.opts.Colors.Entries(),
		LegendTitle:    in.opts.ColorProperty,
		ShowNodeLabels: !vizNoLabels,
	}
	if vizOffline {
		if vizScriptPath == "" {
			exitWithError(ExitError, "--offline needs --cytoscape-js <path to cytoscape.min.js>")
		}
		src, err := os.ReadFile(vizScriptPath)
		if err != nil {
			exitWithError(ExitError, "reading Cytoscape.js: %v", err)
		}
		opts.CytoscapeJS = string(src)
	}

	html, err := viz.GenerateHTML(g, opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	writeOutput(vizOutput, []byte(html), "Visualization")
	if vizOpen {
		if err := opener.Open(vizOutput); err != nil {
			exitWithError(ExitError, "opening visualization: %v", err)
		}
	}
	return nil
}
