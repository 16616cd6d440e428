package graph

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestToCytoscapeJSON_FieldNames(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{ID: "p-1", Label: "First", Type: KindPage, Color: "#fff"},
			{ID: "pv-tags-a", Label: "a", Type: KindProp, PropName: "tags"},
			{ID: "k-x", Label: "x", Type: KindKeyword},
		},
		Edges: []Edge{{ID: "e-p-1-pv-tags-a", Source: "p-1", Target: "pv-tags-a"}},
	}

	out, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	var raw struct {
		Nodes []struct {
			Data map[string]any `json:"data"`
		} `json:"nodes"`
		Edges []struct {
			Data map[string]any `json:"data"`
		} `json:"edges"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	page := raw.Nodes[0].Data
	if page["id"] != "p-1" || page["label"] != "First" || page["type"] != "page" || page["color"] != "#fff" {
		t.Errorf("page data = %v", page)
	}
	if _, ok := page["propName"]; ok {
		t.Error("page node should not carry propName")
	}
	if raw.Nodes[1].Data["propName"] != "tags" {
		t.Errorf("prop data = %v", raw.Nodes[1].Data)
	}
	if _, ok := raw.Nodes[2].Data["color"]; ok {
		t.Error("keyword node should not carry color")
	}

	edge := raw.Edges[0].Data
	if edge["id"] != "e-p-1-pv-tags-a" || edge["source"] != "p-1" || edge["target"] != "pv-tags-a" {
		t.Errorf("edge data = %v", edge)
	}
}

func TestToCytoscapeJSON_EmptyGraphHasArrays(t *testing.T) {
	out, err := (&Graph{}).ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}
	if out != `{"nodes":[],"edges":[]}` {
		t.Errorf("got %s", out)
	}
}

func TestParseCytoscapeJSON(t *testing.T) {
	g := statsFixture()
	out, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}

	parsed, err := ParseCytoscapeJSON([]byte(out))
	if err != nil {
		t.Fatalf("ParseCytoscapeJSON() error = %v", err)
	}
	if len(parsed.Nodes) != len(g.Nodes) || len(parsed.Edges) != len(g.Edges) {
		t.Fatalf("parsed %d/%d, want %d/%d", len(parsed.Nodes), len(parsed.Edges), len(g.Nodes), len(g.Edges))
	}
	if ComputeStats(parsed).TopCentralNodes[0].ID != "p-2" {
		t.Error("stats over parsed graph differ from the original")
	}

	if _, err := ParseCytoscapeJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	} else if !strings.Contains(err.Error(), "parsing Cytoscape elements") {
		t.Errorf("error = %v", err)
	}
}

func TestWithoutNodes(t *testing.T) {
	g := statsFixture()
	pruned := g.WithoutNodes("k-alpha", "not-there")

	if _, ok := pruned.Node("k-alpha"); ok {
		t.Error("k-alpha still present")
	}
	for _, e := range pruned.Edges {
		if e.Source == "k-alpha" || e.Target == "k-alpha" {
			t.Errorf("edge %q still touches k-alpha", e.ID)
		}
	}
	if _, ok := g.Node("k-alpha"); !ok {
		t.Error("original graph was mutated")
	}
	if len(g.Edges) != 7 {
		t.Errorf("original edges = %d, want 7", len(g.Edges))
	}
}

func TestNilGraph(t *testing.T) {
	var g *Graph

	elements := g.Elements()
	if elements.Nodes == nil || elements.Edges == nil {
		t.Errorf("Elements() on nil graph = %+v, want empty arrays", elements)
	}

	pruned := g.WithoutNodes("p-1")
	if pruned == nil {
		t.Fatal("WithoutNodes() on nil graph returned nil")
	}
	if len(pruned.Nodes) != 0 || len(pruned.Edges) != 0 {
		t.Errorf("WithoutNodes() on nil graph = %+v, want empty", pruned)
	}
}
