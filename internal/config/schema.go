package config

// Config is the root configuration structure.
type Config struct {
	Notion   NotionConfig   `toml:"notion"`
	Player   PlayerConfig   `toml:"player"`
	Defaults DefaultsConfig `toml:"defaults"`
	Log      LogConfig      `toml:"log"`
}

// NotionConfig holds Notion API settings.
type NotionConfig struct {
	Token        string `toml:"token"`
	DatabaseID   string `toml:"database_id"`
	APIVersion   string `toml:"api_version"`
	BaseURL      string `toml:"base_url"`
	TagsProperty string `toml:"tags_property"`
	URLProperty  string `toml:"url_property"`
	SortProperty string `toml:"sort_property"`
	Timeout      int    `toml:"timeout"`
}

// PlayerConfig holds media player settings.
type PlayerConfig struct {
	Binary    string   `toml:"binary"`
	YtdlpPath string   `toml:"ytdlp_path"`
	Autofit   string   `toml:"autofit"`
	ExtraArgs []string `toml:"extra_args"`
	Hosts     []string `toml:"hosts"`
}

// DefaultsConfig holds default selection settings.
type DefaultsConfig struct {
	Number int  `toml:"number"`
	Random bool `toml:"random"`
	Window bool `toml:"window"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	Color string `toml:"color"`
}
