package graph

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data Node `json:"data"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data Edge `json:"data"`
}

// Elements converts the graph to Cytoscape.js elements.
func (g *Graph) Elements() CytoscapeElements {
	if g == nil {
		return CytoscapeElements{Nodes: []CytoscapeNode{}, Edges: []CytoscapeEdge{}}
	}
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: n})
	}
	for _, e := range g.Edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{Data: e})
	}
	return elements
}

// ToCytoscapeJSON converts the graph to Cytoscape.js JSON format.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	jsonBytes, err := json.Marshal(g.Elements())
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// ParseCytoscapeJSON reads a graph previously written by ToCytoscapeJSON, or
// exported from a Cytoscape.js front end with the same element shape.
func ParseCytoscapeJSON(data []byte) (*Graph, error) {
	var elements CytoscapeElements
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("parsing Cytoscape elements: %w", err)
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(elements.Nodes)),
		Edges: make([]Edge, 0, len(elements.Edges)),
	}
	for _, n := range elements.Nodes {
		g.Nodes = append(g.Nodes, n.Data)
	}
	for _, e := range elements.Edges {
		g.Edges = append(g.Edges, e.Data)
	}
	return g, nil
}
