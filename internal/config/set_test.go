package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	perrors "github.com/tessro/play-notion/internal/errors"
)

func TestSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  interface{}
	}{
		{"notion.token", "secret_abc", "secret_abc"},
		{"notion.database_id", "0f1b2c3d4e5f6789abcdef0123456789", "0f1b2c3d4e5f6789abcdef0123456789"},
		{"notion.api_version", "2022-06-28", "2022-06-28"},
		{"notion.base_url", "http://localhost:8080", "http://localhost:8080"},
		{"notion.tags_property", "Genre", "Genre"},
		{"notion.url_property", "Link", "Link"},
		{"notion.sort_property", "Added", "Added"},
		{"notion.timeout", "15", int64(15)},
		{"player.binary", "/usr/local/bin/mpv", "/usr/local/bin/mpv"},
		{"player.ytdlp_path", "/opt/homebrew/bin/yt-dlp", "/opt/homebrew/bin/yt-dlp"},
		{"player.autofit", "50%x480", "50%x480"},
		{"player.extra_args", "--volume=50, --shuffle", []string{"--volume=50", "--shuffle"}},
		{"player.hosts", "youtube,,bandcamp", []string{"youtube", "bandcamp"}},
		{"defaults.number", "20", int64(20)},
		{"defaults.random", "true", true},
		{"defaults.window", "0", false},
		{"log.level", "debug", "debug"},
		{"log.color", "never", "never"},
	}

	if len(tests) != len(Keys()) {
		t.Errorf("table covers %d keys, Keys() has %d", len(tests), len(Keys()))
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			raw := map[string]interface{}{}
			if err := Set(raw, tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.key, tt.value, err)
			}

			section, field, _ := strings.Cut(tt.key, ".")
			got := raw[section].(map[string]interface{})[field]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Set(%q, %q) stored %#v, want %#v", tt.key, tt.value, got, tt.want)
			}
		})
	}
}

func TestSetKeepsOtherKeys(t *testing.T) {
	raw := map[string]interface{}{
		"notion": map[string]interface{}{"token": "secret_abc"},
	}
	if err := Set(raw, "notion.database_id", "db"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	notion := raw["notion"].(map[string]interface{})
	if notion["token"] != "secret_abc" || notion["database_id"] != "db" {
		t.Errorf("notion section = %v", notion)
	}
}

func TestSetErrors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"defaults.volume", "5"},
		{"number", "5"},
		{"defaults.number", "lots"},
		{"notion.timeout", "1.5"},
		{"defaults.random", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := Set(map[string]interface{}{}, tt.key, tt.value)
			if !errors.Is(err, perrors.ErrInvalidConfig) {
				t.Errorf("Set(%q, %q) error = %v, want ErrInvalidConfig", tt.key, tt.value, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse("[defaults]\nnumber = 20\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Defaults.Number != 20 {
		t.Errorf("Number = %d, want 20", cfg.Defaults.Number)
	}
	if cfg.Player.Binary != "mpv" {
		t.Errorf("Binary = %q, want the default", cfg.Player.Binary)
	}

	if _, err := Parse("[defaults\n"); !errors.Is(err, perrors.ErrInvalidConfig) {
		t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
	}
}
