// Package clipboard copies text to the system clipboard via shell commands.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard command is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Command returns the argv of the clipboard writer for goos. lookPath
// reports whether a program is installed, as exec.LookPath does.
func Command(goos string, lookPath func(string) (string, error)) ([]string, error) {
	switch goos {
	case "darwin":
		if _, err := lookPath("pbcopy"); err == nil {
			return []string{"pbcopy"}, nil
		}
	case "linux":
		candidates := [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
		for _, argv := range candidates {
			if _, err := lookPath(argv[0]); err == nil {
				return argv, nil
			}
		}
	}
	return nil, ErrClipboardUnavailable
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	argv, err := Command(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
