package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.play-notionrc, $XDG_CONFIG_HOME/play-notion/config.toml, ~/.config/play-notion/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := FindConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultPath returns the path used by "config init" when no file is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".play-notionrc"
	}
	return filepath.Join(home, ".play-notionrc")
}

// FindConfigFile returns the first existing config file path.
func FindConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".play-notionrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "play-notion", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// loadDotEnv populates the environment from a .env file. Variables that are
// already set win over the file.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// DatabaseURL returns the database resource URL.
func (c *NotionConfig) DatabaseURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/v1/databases/" + c.DatabaseID
}

// QueryURL returns the database query endpoint.
func (c *NotionConfig) QueryURL() string {
	return c.DatabaseURL() + "/query"
}

// firstEnv returns the value of the first non-empty variable.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Notion
	if v := firstEnv("PLAY_NOTION_TOKEN", "NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := firstEnv("PLAY_NOTION_DATABASE_ID", "NOTION_DATABASE_ID"); v != "" {
		cfg.Notion.DatabaseID = v
	}
	if v := os.Getenv("PLAY_NOTION_API_VERSION"); v != "" {
		cfg.Notion.APIVersion = v
	}
	if v := os.Getenv("PLAY_NOTION_BASE_URL"); v != "" {
		cfg.Notion.BaseURL = v
	}

	// Player
	if v := os.Getenv("PLAY_NOTION_PLAYER"); v != "" {
		cfg.Player.Binary = v
	}
	if v := firstEnv("PLAY_NOTION_YTDLP_PATH", "YTDLP_PATH"); v != "" {
		cfg.Player.YtdlpPath = v
	}

	// Defaults
	if v := os.Getenv("PLAY_NOTION_NUMBER"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.Number = i
		}
	}

	// Log
	if v := os.Getenv("PLAY_NOTION_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLAY_NOTION_LOG_COLOR"); v != "" {
		cfg.Log.Color = v
	}
}
