package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}

	if v := raw.Viewport; v != nil {
		if v.Source != nil {
			cfg.Viewport.Source = ViewportSource(strings.ToLower(strings.TrimSpace(string(*v.Source))))
		}
		setString(&cfg.Viewport.Display, v.Display)
		setInt(&cfg.Viewport.Width, v.Width)
		setInt(&cfg.Viewport.Height, v.Height)
		setInt(&cfg.Viewport.MenuBarHeight, v.MenuBarHeight)
		setInt(&cfg.Viewport.DockHeight, v.DockHeight)
		setInt(&cfg.Viewport.MobileBreakpoint, v.MobileBreakpoint)
		setInt(&cfg.Viewport.MobileMargin, v.MobileMargin)
		setInt(&cfg.Viewport.PollSeconds, v.PollSeconds)
	}

	if w := raw.Window; w != nil {
		setInt(&cfg.Window.DefaultWidth, w.DefaultWidth)
		setInt(&cfg.Window.DefaultHeight, w.DefaultHeight)
		setInt(&cfg.Window.MinWidth, w.MinWidth)
		setInt(&cfg.Window.MinHeight, w.MinHeight)
		setInt(&cfg.Window.CascadeOriginX, w.CascadeOriginX)
		setInt(&cfg.Window.CascadeOriginY, w.CascadeOriginY)
		setInt(&cfg.Window.CascadeStep, w.CascadeStep)
		setInt(&cfg.Window.OffscreenMargin, w.OffscreenMargin)
		setInt(&cfg.Window.MinVisible, w.MinVisible)
	}

	if s := raw.Snap; s != nil {
		if s.Enabled != nil {
			cfg.Snap.Enabled = *s.Enabled
		}
		setInt(&cfg.Snap.Threshold, s.Threshold)
	}

	if s := raw.Shake; s != nil {
		if s.Enabled != nil {
			cfg.Shake.Enabled = *s.Enabled
		}
		setInt(&cfg.Shake.Reversals, s.Reversals)
		setInt(&cfg.Shake.WindowMS, s.WindowMS)
	}

	if a := raw.Animation; a != nil {
		setInt(&cfg.Animation.PaintDelayMS, a.PaintDelayMS)
		setInt(&cfg.Animation.OpenMS, a.OpenMS)
		setInt(&cfg.Animation.CloseMS, a.CloseMS)
		setInt(&cfg.Animation.LayoutMS, a.LayoutMS)
		if a.SpringFrequency != nil {
			cfg.Animation.SpringFrequency = *a.SpringFrequency
		}
		if a.SpringDamping != nil {
			cfg.Animation.SpringDamping = *a.SpringDamping
		}
	}

	for _, name := range sortedKeys(raw.ContentTypes) {
		ct := raw.ContentTypes[name]
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, &ValidationError{Path: "content_types", Err: fmt.Errorf("content type name must not be empty")}
		}
		out := ContentTypeConfig{}
		setString(&out.Renderer, ct.Renderer)
		setInt(&out.Width, ct.Width)
		setInt(&out.Height, ct.Height)
		cfg.ContentTypes[key] = out
	}

	if raw.Catalog != nil {
		cfg.Catalog = append(cfg.Catalog[:0:0], raw.Catalog...)
	}

	return cfg, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
