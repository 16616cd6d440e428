package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/notiongraph/internal/config"
	"github.com/spf13/cobra"
)

var initDatabase string

func init() {
	initCmd.Flags().StringVar(&initDatabase, "database", "", "Notion database id to use")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a workspace",
	Long: `Create a .notiongraph workspace in the given directory (default: current).

The workspace holds config.json and the local snapshot cache.

Examples:
  ngraph init
  ngraph init --database 0123456789abcdef0123456789abcdef`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandPath(args[0])
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		exitWithError(ExitError, "not a directory: %s", root)
	}

	cfg, err := config.Init(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if initDatabase != "" {
		cfg.DatabaseID = initDatabase
		if err := cfg.Save(root); err != nil {
			exitWithError(ExitError, "saving config: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Created workspace in %s\n", config.WorkspacePath(root))
		if cfg.DatabaseID == "" {
			fmt.Println("Next: choose a database with 'ngraph db list' and 'ngraph config database <id>'")
		}
	} else {
		outputJSON(StatusResponse{Status: "created", Path: config.WorkspacePath(root)})
	}
	return nil
}
