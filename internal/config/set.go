package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	perrors "github.com/tessro/play-notion/internal/errors"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindList
)

// settable lists the keys "config set" accepts and how their values parse.
var settable = map[string]valueKind{
	"notion.token":         kindString,
	"notion.database_id":   kindString,
	"notion.api_version":   kindString,
	"notion.base_url":      kindString,
	"notion.tags_property": kindString,
	"notion.url_property":  kindString,
	"notion.sort_property": kindString,
	"notion.timeout":       kindInt,
	"player.binary":        kindString,
	"player.ytdlp_path":    kindString,
	"player.autofit":       kindString,
	"player.extra_args":    kindList,
	"player.hosts":         kindList,
	"defaults.number":      kindInt,
	"defaults.random":      kindBool,
	"defaults.window":      kindBool,
	"log.level":            kindString,
	"log.color":            kindString,
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(settable))
}

// Set stores value under key ("section.field") in raw, a decoded TOML
// document. Integers and booleans are parsed; list values are
// comma-separated.
func Set(raw map[string]interface{}, key, value string) error {
	kind, ok := settable[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q (valid keys: %s)", perrors.ErrInvalidConfig, key, strings.Join(Keys(), ", "))
	}

	var typed interface{}
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", perrors.ErrInvalidConfig, key)
		}
		typed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", perrors.ErrInvalidConfig, key)
		}
		typed = b
	case kindList:
		typed = lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	default:
		typed = value
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := raw[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		raw[section] = sectionMap
	}
	sectionMap[field] = typed
	return nil
}

// Parse decodes a TOML document and fills in defaults. Environment
// variables are not consulted.
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrInvalidConfig, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
