// Package config loads the editor configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"pagecells/internal/layout"
	"pagecells/internal/options"
	"pagecells/internal/plugins"
)

// PathEnv overrides the default config file location.
const PathEnv = "PAGECELLS_CONFIG"

// Config is the editor configuration.
type Config struct {
	AllowMoveInEditMode   bool
	AllowResizeInEditMode bool
	Languages             []options.Language
	DefaultLang           string
	// CellSpacing is an int64, an options.Spacing, or nil.
	CellSpacing  any
	Plugins      []string
	ScrollOffset int
	LogLevel     string
}

type fileConfig struct {
	AllowMoveInEditMode   bool               `toml:"allow_move_in_edit_mode"`
	AllowResizeInEditMode bool               `toml:"allow_resize_in_edit_mode"`
	Languages             []options.Language `toml:"languages"`
	DefaultLang           string             `toml:"default_lang"`
	CellSpacing           any                `toml:"cell_spacing"`
	Plugins               []string           `toml:"plugins"`
	ScrollOffset          int                `toml:"scroll_offset"`
	LogLevel              string             `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		AllowMoveInEditMode:   true,
		AllowResizeInEditMode: true,
		Languages:             []options.Language{},
		ScrollOffset:          layout.DefaultScrollOffset,
		LogLevel:              "info",
	}
}

// DefaultPath returns $PAGECELLS_CONFIG or ~/.pagecells/config.toml.
func DefaultPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pagecells", "config.toml")
}

// Load reads path and overlays the keys it defines on Default. An empty
// path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	if meta.IsDefined("allow_move_in_edit_mode") {
		cfg.AllowMoveInEditMode = raw.AllowMoveInEditMode
	}
	if meta.IsDefined("allow_resize_in_edit_mode") {
		cfg.AllowResizeInEditMode = raw.AllowResizeInEditMode
	}
	if meta.IsDefined("languages") {
		cfg.Languages = normalizeLanguages(raw.Languages)
	}
	if meta.IsDefined("default_lang") {
		cfg.DefaultLang = strings.TrimSpace(raw.DefaultLang)
	}
	if meta.IsDefined("cell_spacing") {
		sp, err := parseSpacing(raw.CellSpacing)
		if err != nil {
			return Config{}, fmt.Errorf("parse cell_spacing: %w", err)
		}
		cfg.CellSpacing = sp
	}
	if meta.IsDefined("plugins") {
		cfg.Plugins = normalizeIDs(raw.Plugins)
	}
	if meta.IsDefined("scroll_offset") {
		if raw.ScrollOffset < 0 {
			return Config{}, fmt.Errorf("parse scroll_offset: must not be negative, got %d", raw.ScrollOffset)
		}
		cfg.ScrollOffset = raw.ScrollOffset
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}

// Lang returns the language selected at startup: DefaultLang, else the
// first configured language, else "".
func (c Config) Lang() string {
	if c.DefaultLang != "" {
		return c.DefaultLang
	}
	if len(c.Languages) > 0 {
		return c.Languages[0].Code
	}
	return ""
}

// Build returns the root options snapshot. Without a plugins list every
// plugin of the catalog is enabled.
func (c Config) Build(catalog *plugins.Catalog) (*options.Options, error) {
	enabled := catalog.All()
	if len(c.Plugins) > 0 {
		sel, err := catalog.Select(c.Plugins)
		if err != nil {
			return nil, fmt.Errorf("build options: %w", err)
		}
		enabled = sel
	}
	if c.DefaultLang != "" && len(c.Languages) > 0 && !hasLang(c.Languages, c.DefaultLang) {
		return nil, fmt.Errorf("build options: default_lang %q is not a configured language", c.DefaultLang)
	}
	return &options.Options{
		AllowMoveInEditMode:   c.AllowMoveInEditMode,
		AllowResizeInEditMode: c.AllowResizeInEditMode,
		CellPlugins:           enabled,
		Languages:             c.Languages,
		CellSpacing:           c.CellSpacing,
	}, nil
}

// parseSpacing accepts an integer or a table of edges. Unknown edges are
// an error.
func parseSpacing(v any) (any, error) {
	switch v := v.(type) {
	case int64:
		return v, nil
	case map[string]any:
		var sp options.Spacing
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:     "toml",
			ErrorUnused: true,
			Result:      &sp,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(v); err != nil {
			return nil, err
		}
		return sp, nil
	}
	return nil, fmt.Errorf("expected integer or table, got %T", v)
}

func hasLang(langs []options.Language, code string) bool {
	for _, l := range langs {
		if l.Code == code {
			return true
		}
	}
	return false
}

func normalizeLanguages(in []options.Language) []options.Language {
	out := make([]options.Language, 0, len(in))
	for _, l := range in {
		code := strings.TrimSpace(l.Code)
		if code == "" {
			continue
		}
		label := strings.TrimSpace(l.Label)
		if label == "" {
			label = code
		}
		out = append(out, options.Language{Code: code, Label: label})
	}
	return out
}

func normalizeIDs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, id := range in {
		v := strings.TrimSpace(id)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
