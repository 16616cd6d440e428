package graph

import "slices"

// TopCentralCount is the number of nodes reported in Stats.TopCentralNodes.
const TopCentralCount = 5

// CentralNode is a node together with its degree.
type CentralNode struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Degree int    `json:"degree"`
}

// Stats summarizes a graph snapshot.
type Stats struct {
	NodeCount       int           `json:"nodeCount"`
	EdgeCount       int           `json:"edgeCount"`
	AvgDegree       float64       `json:"avgDegree"`
	TopCentralNodes []CentralNode `json:"topCentralNodes"`
}

// ComputeStats counts nodes and edges, averages degree and ranks the most
// connected nodes. It holds no state between calls.
func ComputeStats(g *Graph) Stats {
	stats := Stats{TopCentralNodes: []CentralNode{}}
	if g == nil {
		return stats
	}

	stats.NodeCount = len(g.Nodes)
	stats.EdgeCount = len(g.Edges)
	if stats.NodeCount > 0 {
		stats.AvgDegree = float64(2*stats.EdgeCount) / float64(stats.NodeCount)
	}
	stats.TopCentralNodes = RankByDegree(g, TopCentralCount)
	return stats
}

// Degrees counts, for every edge endpoint, how many edges touch it. A
// self-loop counts twice.
func Degrees(g *Graph) map[string]int {
	degree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		degree[e.Source]++
		degree[e.Target]++
	}
	return degree
}

// RankByDegree returns nodes ordered by descending degree. Ties keep node
// order. Nodes without edges are included with degree 0. limit <= 0 returns
// every node.
func RankByDegree(g *Graph, limit int) []CentralNode {
	if g == nil {
		return []CentralNode{}
	}

	degree := Degrees(g)
	ranked := make([]CentralNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ranked = append(ranked, CentralNode{ID: n.ID, Label: n.Label, Degree: degree[n.ID]})
	}

	slices.SortStableFunc(ranked, func(a, b CentralNode) int {
		return b.Degree - a.Degree
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
