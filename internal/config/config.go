package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/layout"
	"github.com/1broseidon/deskwm/internal/wm"
)

// ViewportSource selects where viewport metrics come from.
type ViewportSource string

const (
	ViewportStatic ViewportSource = "static"
	ViewportX11    ViewportSource = "x11"
)

type ViewportConfig struct {
	Source           ViewportSource `yaml:"source"`
	Display          string         `yaml:"display,omitempty"`
	Width            int            `yaml:"width"`
	Height           int            `yaml:"height"`
	MenuBarHeight    int            `yaml:"menu_bar_height"`
	DockHeight       int            `yaml:"dock_height"`
	MobileBreakpoint int            `yaml:"mobile_breakpoint"`
	MobileMargin     int            `yaml:"mobile_margin"`
	// PollSeconds is how often an x11 viewport is re-read. 0 disables polling.
	PollSeconds int `yaml:"poll_seconds"`
}

type WindowConfig struct {
	DefaultWidth    int `yaml:"default_width"`
	DefaultHeight   int `yaml:"default_height"`
	MinWidth        int `yaml:"min_width"`
	MinHeight       int `yaml:"min_height"`
	CascadeOriginX  int `yaml:"cascade_origin_x"`
	CascadeOriginY  int `yaml:"cascade_origin_y"`
	CascadeStep     int `yaml:"cascade_step"`
	OffscreenMargin int `yaml:"offscreen_margin"`
	MinVisible      int `yaml:"min_visible"`
}

type SnapConfig struct {
	Enabled   bool `yaml:"enabled"`
	Threshold int  `yaml:"threshold"`
}

type ShakeConfig struct {
	Enabled   bool `yaml:"enabled"`
	Reversals int  `yaml:"reversals"`
	WindowMS  int  `yaml:"window_ms"`
}

type AnimationConfig struct {
	PaintDelayMS    int     `yaml:"paint_delay_ms"`
	OpenMS          int     `yaml:"open_ms"`
	CloseMS         int     `yaml:"close_ms"`
	LayoutMS        int     `yaml:"layout_ms"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// ContentTypeConfig overrides or adds one entry of the content type table.
type ContentTypeConfig struct {
	Renderer string `yaml:"renderer,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
}

type Config struct {
	LogLevel     string                       `yaml:"log_level"`
	Viewport     ViewportConfig               `yaml:"viewport"`
	Window       WindowConfig                 `yaml:"window"`
	Snap         SnapConfig                   `yaml:"snap"`
	Shake        ShakeConfig                  `yaml:"shake"`
	Animation    AnimationConfig              `yaml:"animation"`
	ContentTypes map[string]ContentTypeConfig `yaml:"content_types"`
	Catalog      []content.Item               `yaml:"catalog"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Viewport: ViewportConfig{
			Source:           ViewportStatic,
			Width:            1440,
			Height:           900,
			MenuBarHeight:    36,
			DockHeight:       60,
			MobileBreakpoint: 768,
			MobileMargin:     10,
			PollSeconds:      5,
		},
		Window: WindowConfig{
			DefaultWidth:    800,
			DefaultHeight:   600,
			MinWidth:        320,
			MinHeight:       200,
			CascadeOriginX:  100,
			CascadeOriginY:  100,
			CascadeStep:     30,
			OffscreenMargin: 100,
			MinVisible:      80,
		},
		Snap:  SnapConfig{Enabled: true, Threshold: 30},
		Shake: ShakeConfig{Enabled: true, Reversals: 6, WindowMS: 1000},
		Animation: AnimationConfig{
			PaintDelayMS:    16,
			OpenMS:          450,
			CloseMS:         220,
			LayoutMS:        260,
			SpringFrequency: 8.0,
			SpringDamping:   0.45,
		},
		ContentTypes: map[string]ContentTypeConfig{},
		Catalog:      BuiltinCatalog(),
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	v := c.Viewport
	switch v.Source {
	case ViewportStatic, ViewportX11:
	default:
		return &ValidationError{Path: "viewport.source", Err: fmt.Errorf("source must be one of: static, x11")}
	}
	if v.Width <= 0 {
		return &ValidationError{Path: "viewport.width", Err: fmt.Errorf("width must be > 0")}
	}
	if v.Height <= 0 {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("height must be > 0")}
	}
	if v.MenuBarHeight < 0 || v.DockHeight < 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("menu_bar_height and dock_height must be >= 0")}
	}
	if v.MenuBarHeight+v.DockHeight >= v.Height {
		return &ValidationError{Path: "viewport.height", Err: fmt.Errorf("height must leave room between the menu bar and the dock")}
	}
	if v.MobileBreakpoint < 0 || v.MobileMargin < 0 || v.PollSeconds < 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("mobile_breakpoint, mobile_margin and poll_seconds must be >= 0")}
	}

	w := c.Window
	if w.MinWidth <= 0 || w.MinHeight <= 0 {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("min_width and min_height must be > 0")}
	}
	if w.DefaultWidth < w.MinWidth || w.DefaultHeight < w.MinHeight {
		return &ValidationError{Path: "window.default_width", Err: fmt.Errorf("default size %dx%d is below the minimum %dx%d", w.DefaultWidth, w.DefaultHeight, w.MinWidth, w.MinHeight)}
	}
	if w.CascadeStep <= 0 {
		return &ValidationError{Path: "window.cascade_step", Err: fmt.Errorf("cascade_step must be > 0")}
	}
	if w.OffscreenMargin < 0 {
		return &ValidationError{Path: "window.offscreen_margin", Err: fmt.Errorf("offscreen_margin must be >= 0")}
	}
	if w.MinVisible <= 0 {
		return &ValidationError{Path: "window.min_visible", Err: fmt.Errorf("min_visible must be > 0")}
	}

	if c.Snap.Threshold < 0 {
		return &ValidationError{Path: "snap.threshold", Err: fmt.Errorf("threshold must be >= 0")}
	}
	if c.Shake.Enabled {
		if c.Shake.Reversals < 2 {
			return &ValidationError{Path: "shake.reversals", Err: fmt.Errorf("reversals must be >= 2")}
		}
		if c.Shake.WindowMS <= 0 {
			return &ValidationError{Path: "shake.window_ms", Err: fmt.Errorf("window_ms must be > 0")}
		}
	}

	a := c.Animation
	if a.PaintDelayMS < 0 || a.OpenMS < 0 || a.CloseMS < 0 || a.LayoutMS < 0 {
		return &ValidationError{Path: "animation", Err: fmt.Errorf("durations must be >= 0")}
	}
	if a.SpringFrequency <= 0 {
		return &ValidationError{Path: "animation.spring_frequency", Err: fmt.Errorf("spring_frequency must be > 0")}
	}
	if a.SpringDamping <= 0 {
		return &ValidationError{Path: "animation.spring_damping", Err: fmt.Errorf("spring_damping must be > 0")}
	}

	for _, name := range sortedKeys(c.ContentTypes) {
		ct := c.ContentTypes[name]
		path := "content_types." + name
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "content_types", Err: fmt.Errorf("content_types contains an empty type name")}
		}
		if ct.Width < 0 || ct.Height < 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be >= 0")}
		}
		if (ct.Width == 0) != (ct.Height == 0) {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be set together")}
		}
	}

	if _, err := content.NewCatalog(c.Catalog); err != nil {
		return &ValidationError{Path: "catalog", Err: err}
	}

	if warnings := c.validationWarnings(); len(warnings) > 0 {
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}
	return nil
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	if c.Window.DefaultWidth > c.Viewport.Width || c.Window.DefaultHeight > c.Viewport.Height {
		warnings = append(warnings, fmt.Sprintf("default window size %dx%d is larger than the %dx%d viewport",
			c.Window.DefaultWidth, c.Window.DefaultHeight, c.Viewport.Width, c.Viewport.Height))
	}
	if c.Viewport.Source == ViewportStatic && c.Viewport.PollSeconds != DefaultConfig().Viewport.PollSeconds {
		warnings = append(warnings, "viewport.poll_seconds only applies when viewport.source is x11")
	}
	return warnings
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Registry builds the content type table with this config's overrides.
func (c *Config) Registry() *content.Registry {
	overrides := make(map[content.Type]content.Spec, len(c.ContentTypes))
	for name, ct := range c.ContentTypes {
		overrides[content.NormalizeType(content.Type(name))] = content.Spec{
			Renderer: ct.Renderer,
			Size:     geom.Size{Width: ct.Width, Height: ct.Height},
		}
	}
	return content.NewRegistry(overrides)
}

// ContentCatalog returns the configured catalog. The config has already
// been validated, so errors only occur for hand-built configs.
func (c *Config) ContentCatalog() (*content.Catalog, error) {
	return content.NewCatalog(c.Catalog)
}

// LayoutViewport returns the configured viewport metrics.
func (c *Config) LayoutViewport() layout.Viewport {
	return layout.Viewport{
		Width:            c.Viewport.Width,
		Height:           c.Viewport.Height,
		MenuBarHeight:    c.Viewport.MenuBarHeight,
		DockHeight:       c.Viewport.DockHeight,
		MobileBreakpoint: c.Viewport.MobileBreakpoint,
		MobileMargin:     c.Viewport.MobileMargin,
	}
}

// Settings converts the config into window manager settings.
func (c *Config) Settings() wm.Settings {
	a := c.Animation
	return wm.Settings{
		Viewport: c.LayoutViewport(),
		Placement: layout.Placement{
			DefaultSize:     geom.Size{Width: c.Window.DefaultWidth, Height: c.Window.DefaultHeight},
			MinSize:         geom.Size{Width: c.Window.MinWidth, Height: c.Window.MinHeight},
			CascadeOrigin:   geom.Point{X: c.Window.CascadeOriginX, Y: c.Window.CascadeOriginY},
			CascadeStep:     c.Window.CascadeStep,
			OffscreenMargin: c.Window.OffscreenMargin,
		},
		MinVisible:     c.Window.MinVisible,
		SnapEnabled:    c.Snap.Enabled,
		SnapThreshold:  c.Snap.Threshold,
		ShakeEnabled:   c.Shake.Enabled,
		ShakeReversals: c.Shake.Reversals,
		ShakeWindow:    time.Duration(c.Shake.WindowMS) * time.Millisecond,
		Timing: anim.Timing{
			PaintDelay: time.Duration(a.PaintDelayMS) * time.Millisecond,
			Open:       time.Duration(a.OpenMS) * time.Millisecond,
			Close:      time.Duration(a.CloseMS) * time.Millisecond,
			Layout:     time.Duration(a.LayoutMS) * time.Millisecond,
			Pop:        anim.NewSpringCurve(a.SpringFrequency, a.SpringDamping),
		},
		Registry: c.Registry(),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
