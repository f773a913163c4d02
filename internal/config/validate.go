package config

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"

	"github.com/google/uuid"
	perrors "github.com/tessro/play-notion/internal/errors"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Notion.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("notion: %w", err))
	}
	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks NotionConfig for errors.
func (c *NotionConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url: %q (must be http or https)", c.BaseURL)
	}
	if c.DatabaseID != "" {
		if _, err := uuid.Parse(c.DatabaseID); err != nil {
			return fmt.Errorf("invalid database_id: %w", err)
		}
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	for _, h := range c.Hosts {
		if h == "" {
			return errors.New("hosts must not contain empty entries")
		}
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	switch c.Color {
	case "", "auto", "always", "never":
		// valid
	default:
		return fmt.Errorf("invalid color mode: %s (must be auto, always, or never)", c.Color)
	}
	return nil
}

// CheckNotion reports whether the credentials needed to reach the database
// are present.
func (c *Config) CheckNotion() error {
	if c.Notion.Token == "" {
		return perrors.ErrMissingToken
	}
	if c.Notion.DatabaseID == "" {
		return perrors.ErrMissingDatabase
	}
	return nil
}

// CheckPlayer reports whether the downloader handed to the player can be
// found.
func (c *Config) CheckPlayer() error {
	if c.Player.YtdlpPath == "" {
		return perrors.ErrMissingDownloader
	}
	if _, err := exec.LookPath(c.Player.YtdlpPath); err != nil {
		return fmt.Errorf("%w: %s: %w", perrors.ErrMissingDownloader, c.Player.YtdlpPath, err)
	}
	return nil
}
