// Package main provides the ngraph CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/notiongraph/internal/config"
	"github.com/matsen/notiongraph/internal/notion"
	"github.com/matsen/notiongraph/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables diagnostic logging on stderr
var verbose bool

// logger is replaced by a development logger under --verbose.
var logger = zap.NewNop()

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ngraph",
	Short: "Explore a Notion database as a graph",
	Long: `ngraph turns the pages of a Notion database into an interactive graph.

Pages become nodes, linked to keyword nodes extracted from their titles and
to value nodes of selected properties (tags, status, ...). Pages can be
colored by a property.

Records are fetched into a local SQLite snapshot; graphs, statistics and
visualizations are computed from that snapshot. All commands output JSON by
default; use --human for human-readable output.

Environment Variables:
  NOTION_TOKEN  Notion integration token (overrides 'ngraph auth set')`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
}

func init() {
	// Load .env file if present (for NOTION_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API and cache diagnostics to stderr")
	rootCmd.Version = Version
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// mustFindRepository finds the workspace from the working directory or the
// global workspace_path, exits on error.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.Locate(cwd)
	if err != nil {
		if errors.Is(err, config.ErrNoWorkspace) {
			exitWithError(ExitConfigError, "%v\n\nRun 'ngraph init' to create one, or set workspace_path in %s",
				err, config.GlobalConfigPath())
		}
		exitWithError(ExitConfigError, "locating workspace: %v", err)
	}
	return root
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the snapshot cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root), storage.WithLogger(logger))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustDatabaseID returns the explicit id or the configured one, exits if neither is set.
func mustDatabaseID(args []string, cfg *config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg != nil && cfg.DatabaseID != "" {
		return cfg.DatabaseID
	}
	exitWithError(ExitConfigError, "no database selected\n\nPass a database id or run 'ngraph config database <id>' (see 'ngraph db list').")
	return ""
}

// mustNotionClient creates an API client from the configured token, exits if none is set.
func mustNotionClient() *notion.Client {
	token, err := config.RequireNotionToken()
	if err != nil {
		exitWithError(ExitConfigError, "%s", config.HelpfulConfigMessage())
	}
	return notion.NewClient(
		notion.WithToken(token),
		notion.WithVersion(config.GetNotionVersion()),
		notion.WithLogger(logger),
	)
}
