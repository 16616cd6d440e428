package graph

import (
	"fmt"

	"github.com/matsen/notiongraph/internal/palette"
	"github.com/matsen/notiongraph/internal/record"
	"github.com/matsen/notiongraph/internal/slug"
)

// KeywordsSentinel is the selection entry that stands for "include keyword
// nodes" in property selection lists coming from the outside.
const KeywordsSentinel = "__keywords"

// Options controls which nodes a build produces.
type Options struct {
	// IncludeKeywords adds a keyword node per distinct keyword.
	IncludeKeywords bool

	// Properties lists the categorical properties exposed as prop nodes.
	Properties []string

	// ColorProperty names the property whose first value colors page nodes.
	ColorProperty string

	// Colors is the assignment table for page colors. Nil means a fresh table
	// over palette.DefaultColors.
	Colors *palette.Table
}

// SelectionOptions converts a selection list that may contain
// KeywordsSentinel into Options.
func SelectionOptions(selected []string, colorProperty string) Options {
	opts := Options{ColorProperty: colorProperty}
	for _, s := range selected {
		if s == KeywordsSentinel {
			opts.IncludeKeywords = true
			continue
		}
		opts.Properties = append(opts.Properties, s)
	}
	return opts
}

// KeywordID returns the node id for a keyword.
func KeywordID(keyword string) string {
	return KeywordPrefix + slug.Make(keyword)
}

// PropID returns the node id for a property value.
func PropID(property, value string) string {
	return fmt.Sprintf("%s%s-%s", PropPrefix, slug.Make(property), slug.Make(value))
}

// Build folds records into a graph. Each record contributes exactly one page
// node; keyword and prop nodes are shared across records by id. Edges are not
// deduplicated: a record listing the same value twice yields parallel edges.
func Build(records []record.Record, opts Options) *Graph {
	colors := opts.Colors
	if colors == nil {
		colors = palette.New(nil)
	}
	props := uniqueProperties(opts.Properties)

	b := newBuilder(len(records))
	for _, r := range records {
		pageID := PageID(r.ID)
		b.addNode(Node{
			ID:    pageID,
			Label: r.Title,
			Type:  KindPage,
			Color: pageColor(r, opts.ColorProperty, colors),
		})

		if opts.IncludeKeywords {
			for _, kw := range r.Keywords {
				kwID := KeywordID(kw)
				b.addNode(Node{ID: kwID, Label: kw, Type: KindKeyword})
				b.addEdge(pageID, kwID)
			}
		}

		for _, prop := range props {
			for _, val := range r.Values(prop) {
				pvID := PropID(prop, val)
				b.addNode(Node{ID: pvID, Label: val, Type: KindProp, PropName: prop})
				b.addEdge(pageID, pvID)
			}
		}
	}
	return b.graph()
}

// Legend replays the page color assignment of a build with the same records
// and color property, returning the value→color mapping in first-seen order.
func Legend(records []record.Record, colorProperty string, colors []string) []palette.Entry {
	if colorProperty == "" {
		return nil
	}
	tbl := palette.New(colors)
	for _, r := range records {
		pageColor(r, colorProperty, tbl)
	}
	return tbl.Entries()
}

func pageColor(r record.Record, colorProperty string, colors *palette.Table) string {
	if colorProperty == "" {
		return colors.Default()
	}
	v, ok := r.First(colorProperty)
	if !ok {
		return colors.Default()
	}
	return colors.Assign(v)
}

// uniqueProperties drops duplicates and the keyword sentinel, keeping order.
func uniqueProperties(props []string) []string {
	seen := make(map[string]bool, len(props))
	out := make([]string, 0, len(props))
	for _, p := range props {
		if p == "" || p == KeywordsSentinel || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// builder accumulates nodes in insertion order keyed by id.
type builder struct {
	nodes   []Node
	seen    map[string]bool
	edges   []Edge
	edgeIDs map[string]bool
}

func newBuilder(sizeHint int) *builder {
	return &builder{
		nodes:   make([]Node, 0, sizeHint),
		seen:    make(map[string]bool, sizeHint),
		edgeIDs: make(map[string]bool),
	}
}

func (b *builder) addNode(n Node) {
	if b.seen[n.ID] {
		return
	}
	b.seen[n.ID] = true
	b.nodes = append(b.nodes, n)
}

// addEdge appends an edge. Repeated endpoint pairs get a numeric suffix,
// skipping any suffix already taken by another edge's id, so edge ids stay
// unique within the build.
func (b *builder) addEdge(source, target string) {
	base := EdgePrefix + source + "-" + target
	id := base
	for n := 1; b.edgeIDs[id]; {
		n++
		id = fmt.Sprintf("%s-%d", base, n)
	}
	b.edgeIDs[id] = true
	b.edges = append(b.edges, Edge{ID: id, Source: source, Target: target})
}

func (b *builder) graph() *Graph {
	edges := b.edges
	if edges == nil {
		edges = []Edge{}
	}
	return &Graph{Nodes: b.nodes, Edges: edges}
}
