package config

import (
	"os"
	"path/filepath"
	"testing"

	"pagecells/internal/layout"
	"pagecells/internal/logging"
	"pagecells/internal/options"
	"pagecells/internal/plugins"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AllowMoveInEditMode || !cfg.AllowResizeInEditMode {
		t.Fatalf("expected move and resize allowed by default")
	}
	if cfg.ScrollOffset != layout.DefaultScrollOffset {
		t.Fatalf("unexpected scroll offset: %d", cfg.ScrollOffset)
	}
	if cfg.CellSpacing != nil {
		t.Fatalf("unexpected cell spacing: %#v", cfg.CellSpacing)
	}
}

func TestLoadOverlaysDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
allow_resize_in_edit_mode = false
default_lang = " de "
cell_spacing = 2
plugins = ["text", " ", "markdown"]
scroll_offset = 10
log_level = "debug"

[[languages]]
code = "en"
label = "English"

[[languages]]
code = "de"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.AllowMoveInEditMode {
		t.Fatalf("expected undefined key to keep default")
	}
	if cfg.AllowResizeInEditMode {
		t.Fatalf("expected resize disabled")
	}
	if cfg.DefaultLang != "de" {
		t.Fatalf("unexpected default lang: %q", cfg.DefaultLang)
	}
	if cfg.CellSpacing != int64(2) {
		t.Fatalf("unexpected cell spacing: %#v", cfg.CellSpacing)
	}
	if len(cfg.Plugins) != 2 || cfg.Plugins[1] != "markdown" {
		t.Fatalf("unexpected plugins: %+v", cfg.Plugins)
	}
	if cfg.ScrollOffset != 10 {
		t.Fatalf("unexpected scroll offset: %d", cfg.ScrollOffset)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	want := []options.Language{{Code: "en", Label: "English"}, {Code: "de", Label: "de"}}
	if len(cfg.Languages) != 2 || cfg.Languages[0] != want[0] || cfg.Languages[1] != want[1] {
		t.Fatalf("unexpected languages: %+v", cfg.Languages)
	}
	if cfg.Lang() != "de" {
		t.Fatalf("unexpected startup lang: %q", cfg.Lang())
	}
}

func TestLoadCellSpacingTable(t *testing.T) {
	path := writeConfig(t, `
[cell_spacing]
top = 1
left = 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CellSpacing != (options.Spacing{Top: 1, Left: 3}) {
		t.Fatalf("unexpected spacing: %#v", cfg.CellSpacing)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"spacing string":  `cell_spacing = "wide"`,
		"spacing edge":    "[cell_spacing]\nmiddle = 1",
		"negative offset": `scroll_offset = -1`,
		"syntax":          `allow_move_in_edit_mode = `,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuild(t *testing.T) {
	catalog := plugins.NewCatalog(logging.NewNop())

	opts, err := Default().Build(catalog)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(opts.CellPlugins) != len(catalog.All()) {
		t.Fatalf("expected every plugin enabled, got %d", len(opts.CellPlugins))
	}

	cfg := Default()
	cfg.Plugins = []string{"spacer"}
	cfg.CellSpacing = int64(1)
	opts, err = cfg.Build(catalog)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(opts.CellPlugins) != 1 || opts.CellPlugins[0].ID() != "spacer" {
		t.Fatalf("unexpected plugins: %+v", opts.CellPlugins)
	}
	if options.NewScope(opts, nil).CellSpacing() != options.Uniform(1) {
		t.Fatalf("expected uniform spacing")
	}

	cfg.Plugins = []string{"video"}
	if _, err := cfg.Build(catalog); err == nil {
		t.Fatalf("expected unknown plugin error")
	}

	cfg = Default()
	cfg.Languages = []options.Language{{Code: "en", Label: "English"}}
	cfg.DefaultLang = "fr"
	if _, err := cfg.Build(catalog); err == nil {
		t.Fatalf("expected default_lang error")
	}
}
