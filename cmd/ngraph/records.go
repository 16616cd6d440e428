package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matsen/notiongraph/internal/storage"
	"github.com/spf13/cobra"
)

var recordsImportDatabase string

func init() {
	recordsImportCmd.Flags().StringVar(&recordsImportDatabase, "database", "", "Database id to store the records under (default: workspace database)")
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsImportCmd)
	recordsCmd.AddCommand(recordsSnapshotsCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	rootCmd.AddCommand(recordsCmd)
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the local record snapshots",
	Long: `Manage the local record snapshots.

Records are stored one snapshot per database. The JSONL form has one flat
page object per line: id, title, keywords, createdTime, lastEditedTime, url
and one key per property holding a string or a list of strings.`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list [database-id]",
	Short: "List stored records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)
		databaseID := mustDatabaseID(args, cfg)

		db := mustOpenDatabase(root)
		defer db.Close()
		records, err := db.LoadRecords(databaseID)
		if err != nil {
			return fmt.Errorf("loading records: %w", err)
		}

		if !humanOutput {
			return outputJSON(records)
		}
		for _, r := range records {
			fmt.Printf("%s  %s\n", r.ID, truncateString(r.Title, ListTitleMaxLen))
			if len(r.Keywords) > 0 {
				fmt.Printf("    keywords: %s\n", strings.Join(r.Keywords, ", "))
			}
			if r.LastEditedTime != "" {
				fmt.Printf("    edited %s\n", formatTimestamp(r.LastEditedTime))
			}
		}
		return nil
	},
}

var recordsExportCmd = &cobra.Command{
	Use:   "export [file.jsonl]",
	Short: "Export the workspace snapshot as JSONL",
	Long: `Export the records of the workspace database as JSONL (default: stdout).

Examples:
  ngraph records export records.jsonl
  ngraph records export | jq .title`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)
		records := mustLoadSnapshot(root, cfg)

		if len(args) == 0 {
			return storage.EncodeRecords(os.Stdout, records)
		}
		if err := storage.WriteRecords(args[0], records); err != nil {
			return err
		}
		if humanOutput {
			fmt.Printf("Exported %d records to %s\n", len(records), args[0])
			return nil
		}
		return outputJSON(OutputResponse{Output: args[0]})
	},
}

// ImportResult is the response for records import.
type ImportResult struct {
	DatabaseID string `json:"database_id"`
	Records    int    `json:"records"`
	Changed    bool   `json:"changed"`
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Replace a snapshot with records from a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)
		var explicit []string
		if recordsImportDatabase != "" {
			explicit = []string{recordsImportDatabase}
		}
		databaseID := mustDatabaseID(explicit, cfg)

		records, err := storage.ReadRecords(args[0])
		if err != nil {
			exitWithError(ExitDataError, "reading records: %v", err)
		}

		db := mustOpenDatabase(root)
		defer db.Close()
		changed, err := db.ReplaceRecords(databaseID, records, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("storing snapshot: %w", err)
		}

		result := ImportResult{DatabaseID: databaseID, Records: len(records), Changed: changed}
		if !humanOutput {
			return outputJSON(result)
		}
		fmt.Printf("Imported %d records into %s\n", result.Records, databaseID)
		return nil
	},
}

var recordsSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		db := mustOpenDatabase(root)
		defer db.Close()

		snapshots, err := db.ListSnapshots()
		if err != nil {
			return err
		}
		if !humanOutput {
			return outputJSON(snapshots)
		}
		if len(snapshots) == 0 {
			fmt.Println("No snapshots; run 'ngraph fetch'")
			return nil
		}
		for _, s := range snapshots {
			fmt.Printf("%s  %5d records  fetched %s\n", s.DatabaseID, s.RecordCount, formatTime(s.FetchedAt))
		}
		return nil
	},
}

var recordsClearCmd = &cobra.Command{
	Use:   "clear [database-id]",
	Short: "Delete a stored snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := mustFindRepository()
		cfg := mustLoadConfig(root)
		databaseID := mustDatabaseID(args, cfg)

		db := mustOpenDatabase(root)
		defer db.Close()
		if err := db.DeleteSnapshot(databaseID); err != nil {
			return err
		}
		if humanOutput {
			fmt.Printf("Deleted snapshot of %s\n", databaseID)
			return nil
		}
		return outputJSON(StatusResponse{Status: "deleted"})
	},
}
