package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/ngraph/config.yml.
type GlobalConfig struct {
	WorkspacePath string `yaml:"workspace_path,omitempty"`
	NotionToken   string `yaml:"notion_token,omitempty"`
	NotionVersion string `yaml:"notion_version,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ngraph"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// TokenEnvVar overrides the stored Notion token.
	TokenEnvVar = "NOTION_TOKEN"
)

// Token sources reported by TokenSource.
const (
	TokenFromEnv    = "env"
	TokenFromConfig = "config"
)

// ErrTokenMissing is returned when no Notion token is configured.
var ErrTokenMissing = errors.New("Notion token not configured")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ngraph/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = ExpandPath(cfg.WorkspacePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// SaveGlobalConfig writes cfg to the global config file. The file holds a
// secret, so it is readable by the owner only.
func SaveGlobalConfig(cfg *GlobalConfig) error {
	path := GlobalConfigPath()
	if path == "" {
		return errors.New("cannot determine global config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	saved := *cfg
	globalConfigCache = &saved
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetWorkspacePath returns the default workspace from global config.
func GetWorkspacePath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.WorkspacePath
}

// GetNotionVersion returns the configured Notion-Version header, or "".
func GetNotionVersion() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.NotionVersion
}

// GetNotionToken returns the Notion token. NOTION_TOKEN takes precedence
// over the stored value.
func GetNotionToken() string {
	token, _ := lookupToken()
	return token
}

// TokenSource reports where the token comes from: TokenFromEnv,
// TokenFromConfig or "" when none is configured.
func TokenSource() string {
	_, source := lookupToken()
	return source
}

func lookupToken() (string, string) {
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token, TokenFromEnv
	}
	cfg, err := LoadGlobalConfig()
	if err != nil || cfg.NotionToken == "" {
		return "", ""
	}
	return cfg.NotionToken, TokenFromConfig
}

// RequireNotionToken returns the Notion token or ErrTokenMissing.
func RequireNotionToken() (string, error) {
	token := GetNotionToken()
	if token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

// SetNotionToken stores token in the global config.
func SetNotionToken(token string) error {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return err
	}
	updated := *cfg
	updated.NotionToken = token
	return SaveGlobalConfig(&updated)
}

// ClearNotionToken removes the stored token. NOTION_TOKEN is unaffected.
func ClearNotionToken() error {
	return SetNotionToken("")
}

// HelpfulConfigMessage explains how to provide a Notion token.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No Notion token found.

Create an internal integration at https://www.notion.so/my-integrations,
share your database with it, then either:
  ngraph auth set <token>
or export %s=<token> (a .env file in the working directory also works).

The token is stored in %s`,
		TokenEnvVar,
		configPath)
}
