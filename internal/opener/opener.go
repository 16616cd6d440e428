// Package opener opens files and URLs with the desktop's default handler.
package opener

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// NotionPageURL returns the web URL of a page id, with or without dashes.
func NotionPageURL(pageID string) string {
	return "https://www.notion.so/" + strings.ReplaceAll(pageID, "-", "")
}

// Command returns the argv that opens target on the given platform.
func Command(goos, target string) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"open", target}, nil
	case "linux", "freebsd", "openbsd":
		return []string{"xdg-open", target}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", target}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// Open opens target without waiting for the handler to exit. Local paths
// must exist.
func Open(target string) error {
	if !isURL(target) {
		if _, err := os.Stat(target); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file does not exist: %s", target)
			}
			return fmt.Errorf("checking file: %w", err)
		}
	}

	argv, err := Command(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
