package main

import (
	"fmt"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/spf13/cobra"
)

var neighborsGraphFile string
var neighborsFlags graphFlags

func init() {
	neighborsFlags.register(neighborsCmd)
	neighborsCmd.Flags().StringVar(&neighborsGraphFile, "graph", "", "Use a Cytoscape elements file instead of a fresh build")
	rootCmd.AddCommand(neighborsCmd)
}

// NeighborsResult is the response for the neighbors command.
type NeighborsResult struct {
	Node      graph.Node   `json:"node"`
	Neighbors []graph.Node `json:"neighbors"`
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <node-id>",
	Short: "List the nodes connected to a node",
	Long: `List the nodes sharing an edge with the given node, in edge order.

Examples:
  ngraph neighbors k-graph --keywords --human
  ngraph neighbors pv-tags-go --props Tags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := mustGraph(cmd, &neighborsFlags, neighborsGraphFile)

		node, ok := g.Node(args[0])
		if !ok {
			exitWithError(ExitDataError, "node not found: %s", args[0])
		}
		result := NeighborsResult{Node: node, Neighbors: graph.Connected(g, node.ID)}

		if !humanOutput {
			return outputJSON(result)
		}
		fmt.Printf("%s [%s] has %d neighbors\n", node.Label, node.Type, len(result.Neighbors))
		for _, n := range result.Neighbors {
			fmt.Printf("  %-8s %s\n", n.Type, truncateString(n.Label, ListTitleMaxLen))
		}
		return nil
	},
}
