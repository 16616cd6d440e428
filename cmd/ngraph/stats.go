package main

import (
	"fmt"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/spf13/cobra"
)

var statsGraphFile string
var statsFlags graphFlags

func init() {
	statsFlags.register(statsCmd)
	statsCmd.Flags().StringVar(&statsGraphFile, "graph", "", "Compute over a Cytoscape elements file instead of a fresh build")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graph statistics",
	Long: `Show node and edge counts, the average degree and the five most
connected nodes.

By default the graph is rebuilt from the records; --graph reads an exported
or pruned copy (see 'ngraph nodes --drop ... --output').

Examples:
  ngraph stats --props Tags --keywords --human
  ngraph stats --graph pruned.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := mustGraph(cmd, &statsFlags, statsGraphFile)
		stats := graph.ComputeStats(g)

		if !humanOutput {
			return outputJSON(stats)
		}
		fmt.Printf("Nodes:          %d\n", stats.NodeCount)
		fmt.Printf("Edges:          %d\n", stats.EdgeCount)
		fmt.Printf("Average degree: %.2f\n", stats.AvgDegree)
		if len(stats.TopCentralNodes) > 0 {
			fmt.Println("\nMost connected:")
			for i, n := range stats.TopCentralNodes {
				fmt.Printf("  %d. %s (%d)\n", i+1, truncateString(n.Label, ListTitleMaxLen), n.Degree)
			}
		}
		return nil
	},
}
