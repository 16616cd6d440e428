package main

import (
	"os"

	"github.com/matsen/notiongraph/internal/config"
	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/palette"
	"github.com/matsen/notiongraph/internal/record"
	"github.com/matsen/notiongraph/internal/storage"
	"github.com/spf13/cobra"
)

// graphFlags are the node selection flags shared by graph commands. Unset
// flags fall back to the workspace configuration.
type graphFlags struct {
	props    []string
	keywords bool
	color    string
	selected []string
	input    string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.props, "props", nil, "Properties rendered as value nodes (default: workspace properties)")
	fs.BoolVar(&f.keywords, "keywords", false, "Render keyword nodes (default: workspace keywords)")
	fs.StringVar(&f.color, "color", "", "Property whose first value colors page nodes (default: workspace color-property)")
	fs.StringSliceVar(&f.selected, "select", nil, `Selection list of properties; "`+graph.KeywordsSentinel+`" adds keyword nodes (replaces --props and --keywords)`)
	fs.StringVar(&f.input, "input", "", "Read records from a JSONL file instead of the workspace snapshot")
}

// options resolves the flags against cfg. changed reports whether a flag
// was set on the command line.
func (f *graphFlags) options(cfg *config.Config, changed func(name string) bool) graph.Options {
	if cfg == nil {
		cfg = config.New()
	}

	color := cfg.ColorProperty
	if changed("color") {
		color = f.color
	}

	var opts graph.Options
	if changed("select") {
		opts = graph.SelectionOptions(f.selected, color)
	} else {
		opts = graph.Options{
			IncludeKeywords: cfg.IncludeKeywords,
			Properties:      cfg.Properties,
			ColorProperty:   color,
		}
		if changed("props") {
			opts.Properties = f.props
		}
		if changed("keywords") {
			opts.IncludeKeywords = f.keywords
		}
	}
	opts.Colors = palette.New(cfg.Palette)
	return opts
}

// graphInput is everything a graph command needs to build.
type graphInput struct {
	records []record.Record
	cfg     *config.Config
	opts    graph.Options
}

func (in graphInput) build() *graph.Graph {
	return graph.Build(in.records, in.opts)
}

// mustLoad reads the records named by the flags and resolves build options, exits on error.
func (f *graphFlags) mustLoad(cmd *cobra.Command) graphInput {
	var in graphInput
	if f.input != "" {
		records, err := storage.ReadRecords(f.input)
		if err != nil {
			exitWithError(ExitDataError, "reading records: %v", err)
		}
		in.records = records
		in.cfg = optionalConfig()
	} else {
		root := mustFindRepository()
		in.cfg = mustLoadConfig(root)
		in.records = mustLoadSnapshot(root, in.cfg)
	}
	in.opts = f.options(in.cfg, cmd.Flags().Changed)
	return in
}

// optionalConfig loads the workspace config when there is a workspace and
// returns defaults otherwise.
func optionalConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.New()
	}
	root, err := config.Locate(cwd)
	if err != nil {
		return config.New()
	}
	return mustLoadConfig(root)
}

// mustLoadSnapshot loads the stored records of the workspace database, exits
// if it was never fetched.
func mustLoadSnapshot(root string, cfg *config.Config) []record.Record {
	databaseID := mustDatabaseID(nil, cfg)

	db := mustOpenDatabase(root)
	defer db.Close()

	_, ok, err := db.Snapshot(databaseID)
	if err != nil {
		exitWithError(ExitError, "reading snapshot: %v", err)
	}
	if !ok {
		exitWithError(ExitDataError, "no snapshot of database %s\n\nRun 'ngraph fetch' first.", databaseID)
	}

	records, err := db.LoadRecords(databaseID)
	if err != nil {
		exitWithError(ExitError, "loading records: %v", err)
	}
	return records
}

// mustReadGraph reads a Cytoscape elements file written by build or nodes, exits on error.
func mustReadGraph(path string) *graph.Graph {
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitDataError, "reading graph file: %v", err)
	}
	g, err := graph.ParseCytoscapeJSON(data)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return g
}

// mustGraph returns the graph from graphFile when given, otherwise a fresh build.
func mustGraph(cmd *cobra.Command, f *graphFlags, graphFile string) *graph.Graph {
	if graphFile != "" {
		return mustReadGraph(graphFile)
	}
	return f.mustLoad(cmd).build()
}
