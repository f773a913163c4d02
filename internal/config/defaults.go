package config

import (
	"slices"

	"github.com/tessro/play-notion/internal/notion"
	"github.com/tessro/play-notion/internal/player"
	"github.com/tessro/play-notion/internal/tracks"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	props := notion.DefaultProperties()
	return &Config{
		Notion: NotionConfig{
			APIVersion:   "2022-06-28",
			BaseURL:      "https://api.notion.com",
			TagsProperty: props.Tags,
			URLProperty:  props.URL,
			SortProperty: props.Created,
		},
		Player: PlayerConfig{
			Binary:    player.DefaultBinary,
			YtdlpPath: "yt-dlp",
			Autofit:   player.DefaultAutofit,
			Hosts:     slices.Clone(tracks.DefaultHosts),
		},
		Defaults: DefaultsConfig{
			Number: 30,
		},
		Log: LogConfig{
			Level: "info",
			Color: "auto",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Notion
	if c.Notion.APIVersion == "" {
		c.Notion.APIVersion = d.Notion.APIVersion
	}
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = d.Notion.BaseURL
	}
	if c.Notion.TagsProperty == "" {
		c.Notion.TagsProperty = d.Notion.TagsProperty
	}
	if c.Notion.URLProperty == "" {
		c.Notion.URLProperty = d.Notion.URLProperty
	}
	if c.Notion.SortProperty == "" {
		c.Notion.SortProperty = d.Notion.SortProperty
	}

	// Player
	if c.Player.Binary == "" {
		c.Player.Binary = d.Player.Binary
	}
	if c.Player.YtdlpPath == "" {
		c.Player.YtdlpPath = d.Player.YtdlpPath
	}
	if c.Player.Autofit == "" {
		c.Player.Autofit = d.Player.Autofit
	}
	if len(c.Player.Hosts) == 0 {
		c.Player.Hosts = d.Player.Hosts
	}

	// Defaults
	if c.Defaults.Number == 0 {
		c.Defaults.Number = d.Defaults.Number
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Color == "" {
		c.Log.Color = d.Log.Color
	}
}
