// Package graph builds page/keyword/property graphs from tagged records and
// computes degree statistics and adjacency over them.
package graph

// NodeKind identifies what a node represents.
type NodeKind string

// Node kinds.
const (
	KindPage    NodeKind = "page"
	KindKeyword NodeKind = "keyword"
	KindProp    NodeKind = "prop"
)

// Node identifier prefixes. Identifiers are derived from the entity they
// represent, so rebuilding from the same records yields the same ids.
const (
	PagePrefix    = "p-"
	KeywordPrefix = "k-"
	PropPrefix    = "pv-"
	EdgePrefix    = "e-"
)

// Node is a vertex of the graph.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     NodeKind `json:"type"`
	PropName string   `json:"propName,omitempty"` // prop nodes only
	Color    string   `json:"color,omitempty"`    // page nodes only
}

// Edge is an undirected association stored as a source/target pair.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is an immutable snapshot of one build.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// WithoutNodes returns a copy of g without the given nodes and without any
// edge touching them. g itself is left untouched, so statistics recomputed
// from source records are unaffected by display-only deletions.
func (g *Graph) WithoutNodes(ids ...string) *Graph {
	if g == nil {
		return &Graph{Nodes: []Node{}, Edges: []Edge{}}
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	out := &Graph{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if !drop[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if !drop[e.Source] && !drop[e.Target] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// PageID returns the node id for a record id.
func PageID(recordID string) string {
	return PagePrefix + recordID
}

// RecordID returns the record id of a page node id.
func RecordID(nodeID string) (string, bool) {
	if len(nodeID) <= len(PagePrefix) || nodeID[:len(PagePrefix)] != PagePrefix {
		return "", false
	}
	return nodeID[len(PagePrefix):], true
}
