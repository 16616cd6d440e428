package main

import (
	"fmt"
	"strings"

	"github.com/matsen/notiongraph/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Notion integration token",
	Long: `Manage the Notion integration token.

The token is stored in the global config file. The NOTION_TOKEN environment
variable (or a .env file) takes precedence over the stored token.`,
}

// AuthStatus is the response for auth status.
type AuthStatus struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source,omitempty"`
	ConfigPath string `json:"config_path"`
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is configured",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := AuthStatus{
			Configured: config.GetNotionToken() != "",
			Source:     config.TokenSource(),
			ConfigPath: config.GlobalConfigPath(),
		}
		if !humanOutput {
			return outputJSON(status)
		}
		if !status.Configured {
			fmt.Println(config.HelpfulConfigMessage())
			return nil
		}
		fmt.Printf("Token configured (from %s)\n", status.Source)
		return nil
	},
}

var authSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the integration token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(args[0])
		if token == "" {
			exitWithError(ExitError, "token cannot be empty")
		}
		if err := config.SetNotionToken(token); err != nil {
			exitWithError(ExitError, "saving token: %v", err)
		}
		if humanOutput {
			fmt.Printf("Token saved to %s\n", config.GlobalConfigPath())
			return nil
		}
		return outputJSON(StatusResponse{Status: "saved", Path: config.GlobalConfigPath()})
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearNotionToken(); err != nil {
			exitWithError(ExitError, "clearing token: %v", err)
		}
		if humanOutput {
			fmt.Println("Token removed")
			if config.TokenSource() == config.TokenFromEnv {
				fmt.Printf("Note: %s is still set in the environment\n", config.TokenEnvVar)
			}
			return nil
		}
		return outputJSON(StatusResponse{Status: "cleared", Path: config.GlobalConfigPath()})
	},
}
