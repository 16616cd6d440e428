package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matsen/notiongraph/internal/notion"
)

// Title truncation lengths by context
const (
	ListTitleMaxLen = 50 // Used in node and record lists
	TextMaxLen      = 80 // Used for page block text
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithNotionError maps a Notion client error onto an exit code and exits.
func exitWithNotionError(action string, err error) {
	switch {
	case notion.IsAuthError(err):
		exitWithError(ExitConfigError, "%s: %v\n\nCheck the token with 'ngraph auth status' and that the database is shared with the integration.", action, err)
	case notion.IsNotFound(err):
		exitWithError(ExitRemoteError, "%s: %v", action, err)
	case notion.IsRateLimited(err):
		exitWithError(ExitRemoteError, "%s: %v (try again shortly)", action, err)
	default:
		exitWithError(ExitRemoteError, "%s: %v", action, err)
	}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// OutputResponse reports a file written by a command.
type OutputResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats t relative to now, e.g. "3 minutes ago".
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// formatTimestamp parses an RFC 3339 timestamp from Notion and formats it
// relative to now. Unparseable values are returned unchanged.
func formatTimestamp(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return humanize.Time(t)
}

// writeOutput writes data to path and reports it, or prints data when path is empty.
func writeOutput(path string, data []byte, description string) {
	if path == "" {
		os.Stdout.Write(data)
		return
	}
	if err := writeFile(path, data); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		fmt.Printf("%s written to %s\n", description, path)
	} else {
		outputJSON(OutputResponse{Output: path})
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
