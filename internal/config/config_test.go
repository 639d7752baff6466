package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/1broseidon/deskwm/internal/content"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndHasCatalog(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	cat, err := cfg.ContentCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, ok := cat.Lookup("about-me"); !ok {
		t.Fatalf("expected builtin catalog to contain about-me")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
	if res.Config.Viewport.Width != 1440 {
		t.Fatalf("expected default width 1440, got %d", res.Config.Viewport.Width)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Window.CascadeStep != 30 {
		t.Fatalf("expected cascade_step 30, got %d", res.Config.Window.CascadeStep)
	}
}

func TestLoadFromPath_PartialSectionKeepsDefaults(t *testing.T) {
	data := strings.Join([]string{
		"viewport:",
		"  width: 1280",
		"snap:",
		"  enabled: false",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Viewport.Width != 1280 {
		t.Fatalf("expected width 1280, got %d", cfg.Viewport.Width)
	}
	if cfg.Viewport.Height != 900 {
		t.Fatalf("expected default height 900, got %d", cfg.Viewport.Height)
	}
	if cfg.Snap.Enabled {
		t.Fatalf("expected snap disabled")
	}
	if cfg.Snap.Threshold != 30 {
		t.Fatalf("expected default threshold 30, got %d", cfg.Snap.Threshold)
	}

	val, src, err := Explain(res, "viewport.width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 1280 {
		t.Fatalf("expected explain value 1280, got %#v", val)
	}
	if src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source at line 2, got %#v", src)
	}

	_, src, err = Explain(res, "viewport.height")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %#v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.d/10-base.yaml", "window:\n  cascade_step: 20\n  min_visible: 60\n")
	writeConfig(t, dir, "config.d/20-override.yaml", "window:\n  cascade_step: 25\n")
	writeConfig(t, dir, "config.d/ignored.txt", "window: nonsense\n")
	path := writeConfig(t, dir, "config.yaml", "include: config.d\nwindow:\n  offscreen_margin: 50\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := res.Config.Window
	if w.CascadeStep != 25 {
		t.Fatalf("expected cascade_step 25 from later include, got %d", w.CascadeStep)
	}
	if w.MinVisible != 60 {
		t.Fatalf("expected min_visible 60 from first include, got %d", w.MinVisible)
	}
	if w.OffscreenMargin != 50 {
		t.Fatalf("expected offscreen_margin 50 from main file, got %d", w.OffscreenMargin)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
	if !strings.HasSuffix(res.Files[2], "config.yaml") {
		t.Fatalf("expected main file loaded last, got %v", res.Files)
	}

	_, src, err := Explain(res, "window.cascade_step")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.HasSuffix(src.File, "20-override.yaml") {
		t.Fatalf("expected cascade_step source 20-override.yaml, got %#v", src)
	}
}

func TestLoadFromPath_IncludeFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	writeConfig(t, home, "deskwm-extra.yaml", "snap:\n  threshold: 45\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", "include: ~/deskwm-extra.yaml\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Snap.Threshold != 45 {
		t.Fatalf("expected threshold 45 from home include, got %d", res.Config.Snap.Threshold)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")
	path := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	data := strings.Join([]string{
		"log_level: info",
		"window:",
		"  cascade_step: 0",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "window.cascade_step" {
		t.Fatalf("expected path window.cascade_step, got %q", verr.Path)
	}
	if verr.Source.Line != 3 {
		t.Fatalf("expected source line 3, got %#v", verr.Source)
	}
	if !strings.Contains(err.Error(), ":3:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"viewport source", func(c *Config) { c.Viewport.Source = "wayland" }, "viewport.source"},
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }, "viewport.width"},
		{"bars fill screen", func(c *Config) { c.Viewport.MenuBarHeight = 500; c.Viewport.DockHeight = 400 }, "viewport.height"},
		{"default below min", func(c *Config) { c.Window.DefaultWidth = 100 }, "window.default_width"},
		{"min visible", func(c *Config) { c.Window.MinVisible = 0 }, "window.min_visible"},
		{"shake reversals", func(c *Config) { c.Shake.Reversals = 1 }, "shake.reversals"},
		{"damping", func(c *Config) { c.Animation.SpringDamping = 0 }, "animation.spring_damping"},
		{"half size", func(c *Config) { c.ContentTypes["blog"] = ContentTypeConfig{Width: 900} }, "content_types.blog"},
		{"duplicate item", func(c *Config) {
			c.Catalog = append(c.Catalog, content.Item{ID: "notes", Title: "Again", Type: content.TypeNotes})
		}, "catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q (%v)", tt.path, verr.Path, err)
			}
		})
	}
}

func TestLoadFromPath_ContentTypesAndCatalog(t *testing.T) {
	data := strings.Join([]string{
		"content_types:",
		"  Blog:",
		"    width: 1000",
		"    height: 640",
		"  music:",
		"    renderer: player",
		"    width: 400",
		"    height: 300",
		"catalog:",
		"  - id: tunes",
		"    title: Tunes",
		"    type: music",
		"  - id: blog",
		"    title: Blog",
		"    type: blog",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := res.Config.Registry()
	if got, ok := reg.SizeFor("blog"); !ok || got.Width != 1000 || got.Height != 640 {
		t.Fatalf("expected blog override 1000x640, got %+v", got)
	}
	if got := reg.Renderer("music"); got != "player" {
		t.Fatalf("expected music renderer player, got %q", got)
	}
	if len(res.Config.Catalog) != 2 {
		t.Fatalf("expected catalog replaced with 2 items, got %d", len(res.Config.Catalog))
	}

	val, src, err := Explain(res, "catalog.0.title")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "Tunes" {
		t.Fatalf("expected Tunes, got %#v", val)
	}
	if src.Kind != SourceFile {
		t.Fatalf("expected catalog entry attributed to file, got %#v", src)
	}
}

func TestExplain_UnknownPath(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig(), Sources: map[string]Source{}}
	if _, _, err := Explain(res, "viewport.depth"); err == nil {
		t.Fatalf("expected unknown path error")
	}
	_, src, err := Explain(res, "catalog.0.id")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceBuiltin {
		t.Fatalf("expected builtin source for default catalog, got %#v", src)
	}
}

func TestSettings_ConvertsUnits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shake.WindowMS = 750
	cfg.Animation.OpenMS = 300
	s := cfg.Settings()
	if s.ShakeWindow != 750*time.Millisecond {
		t.Fatalf("expected shake window 750ms, got %v", s.ShakeWindow)
	}
	if s.Timing.Open != 300*time.Millisecond {
		t.Fatalf("expected open 300ms, got %v", s.Timing.Open)
	}
	if s.Placement.DefaultSize.Width != 800 || s.Viewport.MenuBarHeight != 36 {
		t.Fatalf("unexpected placement/viewport: %+v %+v", s.Placement, s.Viewport)
	}
	if s.Timing.Pop == nil {
		t.Fatalf("expected pop curve")
	}
}
