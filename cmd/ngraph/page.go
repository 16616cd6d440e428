package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/matsen/notiongraph/internal/graph"
	"github.com/matsen/notiongraph/internal/opener"
	"github.com/spf13/cobra"
)

var pageOpen bool

func init() {
	pageCmd.Flags().BoolVar(&pageOpen, "open", false, "Open the page in the browser instead of printing its blocks")
	rootCmd.AddCommand(pageCmd)
}

var pageCmd = &cobra.Command{
	Use:   "page <page-id>",
	Short: "Show the content blocks of a page",
	Long: `Show the top-level content blocks of a Notion page as plain text.

Page ids are the record ids, i.e. page node ids without the "p-" prefix.

Examples:
  ngraph page 0123456789abcdef0123456789abcdef --human
  ngraph page p-0123456789abcdef0123456789abcdef --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID := strings.TrimPrefix(args[0], graph.PagePrefix)

		if pageOpen {
			url := opener.NotionPageURL(pageID)
			if err := opener.Open(url); err != nil {
				exitWithError(ExitError, "opening page: %v", err)
			}
			if humanOutput {
				fmt.Printf("Opened %s\n", url)
				return nil
			}
			return outputJSON(OutputResponse{Output: url})
		}

		client := mustNotionClient()
		blocks, err := client.PageBlocks(context.Background(), pageID)
		if err != nil {
			exitWithNotionError("reading page", err)
		}

		if !humanOutput {
			return outputJSON(blocks)
		}
		for _, b := range blocks {
			if b.Text == "" {
				continue
			}
			fmt.Printf("[%s] %s\n", b.Type, truncateString(b.Text, TextMaxLen))
		}
		return nil
	},
}
