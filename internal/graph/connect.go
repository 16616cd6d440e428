package graph

// Connected returns the nodes sharing an edge with nodeID, in either
// direction. Each neighbour appears once, in order of first encounter in the
// edge list. Endpoints with no matching node are skipped.
func Connected(g *Graph, nodeID string) []Node {
	if g == nil {
		return []Node{}
	}

	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	seen := make(map[string]bool)
	out := []Node{}
	for _, e := range g.Edges {
		var other string
		switch nodeID {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		if n, ok := byID[other]; ok {
			out = append(out, n)
		}
	}
	return out
}
