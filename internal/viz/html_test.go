package viz

import (
	"errors"
	"strings"
	"testing"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/palette"
	"github.com/matsen/notiongraph/internal/record"
)

func sampleGraph() *graph.Graph {
	records := []record.Record{
		{ID: "1", Title: "First <page>", Props: map[string]record.Value{"Tags": record.List("go", "graphs")}},
		{ID: "2", Title: "Second", Props: map[string]record.Value{"Tags": record.List("go")}},
	}
	return graph.Build(records, graph.Options{Properties: []string{"Tags"}, ColorProperty: "Tags"})
}

func TestGenerateHTML_NilGraph(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil graph")
	}
}

func TestGenerateHTML_EmptyGraph(t *testing.T) {
	html, err := GenerateHTML(&graph.Graph{}, HTMLOptions{Title: "My Notes"})
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	for _, want := range []string{"No graph data", "ngraph fetch", "My Notes - Empty"} {
		if !strings.Contains(html, want) {
			t.Errorf("empty page missing %q", want)
		}
	}
	if strings.Contains(html, "cytoscape(") {
		t.Error("empty page should not initialize Cytoscape")
	}
}

func TestGenerateHTML_Layouts(t *testing.T) {
	tests := []struct {
		layout  string
		want    string
		wantErr bool
	}{
		{"", `"cose"`, false},
		{"force", `"cose"`, false},
		{"circle", `"circle"`, false},
		{"grid", `"grid"`, false},
		{"concentric", `"concentric"`, false},
		{"breadthfirst", `"breadthfirst"`, false},
		{"spiral", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			html, err := GenerateHTML(sampleGraph(), HTMLOptions{Layout: tt.layout})
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateHTML() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.Contains(html, "const layout = "+tt.want) {
				t.Errorf("layout %q not rendered as %s", tt.layout, tt.want)
			}
		})
	}
}

func TestGenerateHTML_EmbedsElementsAndStats(t *testing.T) {
	g := sampleGraph()
	html, err := GenerateHTML(g, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}

	for _, want := range []string{
		`"id":"p-1"`,
		`"id":"pv-tags-go"`,
		`"propName":"Tags"`,
		"data(color)",
		"Nodes: 4",
		"Edges: 3",
		"Average degree: 1.50",
		CDNScript,
		"<title>" + DefaultTitle + "</title>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(html, `id="legend"`) {
		t.Error("legend panel should be omitted without entries")
	}
}

func TestGenerateHTML_EscapesLabelsInStats(t *testing.T) {
	html, err := GenerateHTML(sampleGraph(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<li>First <page>") {
		t.Error("node label rendered unescaped in stats panel")
	}
}

func TestGenerateHTML_Legend(t *testing.T) {
	opts := DefaultOptions()
	opts.Legend = []palette.Entry{{Value: "go", Color: "#E3E2E0"}, {Value: "rust", Color: "#EEE0DA"}}
	opts.LegendTitle = "Tags"

	html, err := GenerateHTML(sampleGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`id="legend"`, "<h3>Tags</h3>", "#E3E2E0", "rust"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTML_Offline(t *testing.T) {
	opts := DefaultOptions()
	opts.Offline = true

	if _, err := GenerateHTML(sampleGraph(), opts); !errors.Is(err, ErrNoCytoscapeSource) {
		t.Fatalf("error = %v, want ErrNoCytoscapeSource", err)
	}

	opts.CytoscapeJS = "window.cytoscape = function(){}; // </script>"
	html, err := GenerateHTML(sampleGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "unpkg.com") {
		t.Error("offline page should not reference the CDN")
	}
	if !strings.Contains(html, "window.cytoscape = function(){}; // <\\/script>") {
		t.Error("inline script not embedded or closing tag not neutralized")
	}
}

func TestGenerateHTML_NodeLabelsToggle(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowNodeLabels = false
	html, err := GenerateHTML(sampleGraph(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "const showLabels =  false ") && !strings.Contains(html, "const showLabels = false") {
		t.Error("showLabels not rendered as false")
	}
}
