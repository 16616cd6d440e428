package main

import (
	"context"
	"fmt"

	"github.com/matsen/notiongraph/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbPropsCmd)
	rootCmd.AddCommand(dbCmd)
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect Notion databases",
	Long: `Inspect the Notion databases shared with the integration.

Examples:
  ngraph db list
  ngraph db props 0123456789abcdef0123456789abcdef --human`,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List databases shared with the integration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mustNotionClient()
		dbs, err := client.SearchDatabases(context.Background())
		if err != nil {
			exitWithNotionError("listing databases", err)
		}

		if !humanOutput {
			return outputJSON(dbs)
		}
		if len(dbs) == 0 {
			fmt.Println("No databases shared with this integration")
			return nil
		}
		for _, d := range dbs {
			title := d.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("%s  %s\n", d.ID, truncateString(title, ListTitleMaxLen))
		}
		return nil
	},
}

var dbPropsCmd = &cobra.Command{
	Use:   "props [database-id]",
	Short: "List the properties of a database",
	Long: `List the properties of a database with their types.

Properties of type multi_select, select and status can be rendered as value
nodes (--props) or used to color pages (--color).

Without an argument the workspace database is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if len(args) == 0 {
			cfg = mustLoadConfig(mustFindRepository())
		}
		databaseID := mustDatabaseID(args, cfg)

		client := mustNotionClient()
		props, err := client.DatabaseProperties(context.Background(), databaseID)
		if err != nil {
			exitWithNotionError("reading database schema", err)
		}

		if !humanOutput {
			return outputJSON(props)
		}
		for _, p := range props {
			fmt.Printf("%-30s %s\n", p.Name, p.Type)
		}
		return nil
	},
}
