package main

import (
	"reflect"
	"testing"

	"github.com/matsen/notiongraph/internal/config"
	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/palette"
	"github.com/spf13/cobra"
)

func TestGraphFlagsOptions(t *testing.T) {
	cfg := &config.Config{
		Properties:      []string{"Tags"},
		IncludeKeywords: true,
		ColorProperty:   "Status",
		Palette:         []string{"#111111", "#222222"},
	}

	tests := []struct {
		name         string
		args         []string
		cfg          *config.Config
		wantProps    []string
		wantKeywords bool
		wantColor    string
	}{
		{"workspace defaults", nil, cfg, []string{"Tags"}, true, "Status"},
		{"no workspace", nil, nil, nil, false, ""},
		{"props override", []string{"--props", "Area,Kind"}, cfg, []string{"Area", "Kind"}, true, "Status"},
		{"keywords off", []string{"--keywords=false"}, cfg, []string{"Tags"}, false, "Status"},
		{"color cleared", []string{"--color", ""}, cfg, []string{"Tags"}, true, ""},
		{"selection with sentinel", []string{"--select", "Tags,__keywords,Area"}, nil, []string{"Tags", "Area"}, true, ""},
		{"selection replaces workspace", []string{"--select", "Area"}, cfg, []string{"Area"}, false, "Status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f graphFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}

			opts := f.options(tt.cfg, cmd.Flags().Changed)
			if !reflect.DeepEqual(opts.Properties, tt.wantProps) {
				t.Errorf("Properties = %v, want %v", opts.Properties, tt.wantProps)
			}
			if opts.IncludeKeywords != tt.wantKeywords {
				t.Errorf("IncludeKeywords = %v, want %v", opts.IncludeKeywords, tt.wantKeywords)
			}
			if opts.ColorProperty != tt.wantColor {
				t.Errorf("ColorProperty = %q, want %q", opts.ColorProperty, tt.wantColor)
			}
			if opts.Colors == nil {
				t.Fatal("Colors table not set")
			}
		})
	}
}

func TestGraphFlagsOptions_UsesWorkspacePalette(t *testing.T) {
	var f graphFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)

	opts := f.options(&config.Config{Palette: []string{"#111111"}}, cmd.Flags().Changed)
	if got := opts.Colors.Assign("a"); got != "#111111" {
		t.Errorf("first color = %q, want #111111", got)
	}

	opts = f.options(nil, cmd.Flags().Changed)
	if got := opts.Colors.Assign("a"); got != palette.DefaultColors[0] {
		t.Errorf("first default color = %q, want %q", got, palette.DefaultColors[0])
	}
}

func TestRankNodes(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "p-1", Label: "One", Type: graph.KindPage},
			{ID: "k-a", Label: "a", Type: graph.KindKeyword},
			{ID: "p-2", Label: "Two", Type: graph.KindPage},
		},
		Edges: []graph.Edge{
			{ID: "e-p-1-k-a", Source: "p-1", Target: "k-a"},
			{ID: "e-p-2-k-a", Source: "p-2", Target: "k-a"},
		},
	}

	got := rankNodes(g, 2)
	want := []NodeEntry{
		{ID: "k-a", Label: "a", Type: graph.KindKeyword, Degree: 2},
		{ID: "p-1", Label: "One", Type: graph.KindPage, Degree: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rankNodes() = %+v, want %+v", got, want)
	}

	pruned := rankNodes(g.WithoutNodes("k-a"), 0)
	if len(pruned) != 2 || pruned[0].Degree != 0 || pruned[1].Degree != 0 {
		t.Errorf("rankNodes(pruned) = %+v", pruned)
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"color-property": "color-property",
		"color_property": "color-property",
		"Keyword_Count":  "keyword-count",
	}
	for in, want := range tests {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"日本語のタイトルです", 6, "日本語..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
