// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Config represents workspace configuration stored in .notiongraph/config.json.
type Config struct {
	DatabaseID      string   `json:"database_id,omitempty"`      // Notion database to fetch
	Properties      []string `json:"properties,omitempty"`       // Properties rendered as nodes
	IncludeKeywords bool     `json:"include_keywords,omitempty"` // Render keyword nodes
	ColorProperty   string   `json:"color_property,omitempty"`   // Property that colors page nodes
	KeywordCount    int      `json:"keyword_count"`              // Keywords extracted per title
	Palette         []string `json:"palette,omitempty"`          // Overrides the default colors
}

const (
	WorkspaceDir = ".notiongraph"
	ConfigFile   = "config.json"
	CacheDir     = "cache"
	DBFile       = "records.db"

	// DefaultKeywordCount is the number of keywords extracted per title
	// when the workspace does not set one.
	DefaultKeywordCount = 5
)

// Keys accepted by Get and Set, in display order.
var Keys = []string{"database", "properties", "keywords", "color-property", "keyword-count", "palette"}

var (
	// ErrNoWorkspace is returned when no workspace can be located.
	ErrNoWorkspace = errors.New("not in a notiongraph workspace (no .notiongraph directory found)")

	// ErrUnknownKey is returned for configuration keys outside Keys.
	ErrUnknownKey = errors.New("unknown config key")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// WorkspacePath returns the path to the .notiongraph directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir)
}

// DBPath returns the path to records.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a workspace.
func IsRepository(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a workspace.
// Returns the workspace root path or ErrNoWorkspace.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoWorkspace
		}
		abs = parent
	}
}

// Locate finds the workspace for start, falling back to the workspace_path
// of the global config.
func Locate(start string) (string, error) {
	root, err := FindRepository(start)
	if err == nil || !errors.Is(err, ErrNoWorkspace) {
		return root, err
	}

	fallback := GetWorkspacePath()
	if fallback != "" && IsRepository(fallback) {
		return fallback, nil
	}
	return "", ErrNoWorkspace
}

// New returns a configuration with defaults applied.
func New() *Config {
	return &Config{KeywordCount: DefaultKeywordCount}
}

// Init creates a workspace at root with a default configuration.
func Init(root string) (*Config, error) {
	if IsRepository(root) {
		return nil, fmt.Errorf("workspace already exists at %s", WorkspacePath(root))
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	cfg := New()
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the keyword count and palette colors.
func (c *Config) Validate() error {
	if c.KeywordCount < 0 {
		return fmt.Errorf("keyword_count must not be negative: %d", c.KeywordCount)
	}
	for _, color := range c.Palette {
		if err := ValidateColor(color); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor checks that color is a #RGB or #RRGGBB hex color.
func ValidateColor(color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("invalid color %q (want #RGB or #RRGGBB)", color)
	}
	return nil
}

// Get returns the value of a configuration key as displayed by the CLI.
// Lists are comma-separated.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "database":
		return c.DatabaseID, nil
	case "properties":
		return strings.Join(c.Properties, ","), nil
	case "keywords":
		return strconv.FormatBool(c.IncludeKeywords), nil
	case "color-property":
		return c.ColorProperty, nil
	case "keyword-count":
		return strconv.Itoa(c.KeywordCount), nil
	case "palette":
		return strings.Join(c.Palette, ","), nil
	}
	return "", fmt.Errorf("%w: %s (valid: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
}

// Set parses value and assigns it to key. Lists are comma-separated and an
// empty value clears the key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database":
		c.DatabaseID = strings.TrimSpace(value)
	case "properties":
		c.Properties = SplitList(value)
	case "keywords":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid keywords value %q: want true or false", value)
		}
		c.IncludeKeywords = b
	case "color-property":
		c.ColorProperty = strings.TrimSpace(value)
	case "keyword-count":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid keyword-count %q: want a non-negative integer", value)
		}
		c.KeywordCount = n
	case "palette":
		colors := SplitList(value)
		for _, color := range colors {
			if err := ValidateColor(color); err != nil {
				return err
			}
		}
		c.Palette = colors
	default:
		return fmt.Errorf("%w: %s (valid: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
