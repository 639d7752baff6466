package config

import (
	"fmt"

	"github.com/1broseidon/deskwm/internal/content"
	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawViewport struct {
	Source           *ViewportSource `yaml:"source"`
	Display          *string         `yaml:"display"`
	Width            *int            `yaml:"width"`
	Height           *int            `yaml:"height"`
	MenuBarHeight    *int            `yaml:"menu_bar_height"`
	DockHeight       *int            `yaml:"dock_height"`
	MobileBreakpoint *int            `yaml:"mobile_breakpoint"`
	MobileMargin     *int            `yaml:"mobile_margin"`
	PollSeconds      *int            `yaml:"poll_seconds"`
}

type RawWindow struct {
	DefaultWidth    *int `yaml:"default_width"`
	DefaultHeight   *int `yaml:"default_height"`
	MinWidth        *int `yaml:"min_width"`
	MinHeight       *int `yaml:"min_height"`
	CascadeOriginX  *int `yaml:"cascade_origin_x"`
	CascadeOriginY  *int `yaml:"cascade_origin_y"`
	CascadeStep     *int `yaml:"cascade_step"`
	OffscreenMargin *int `yaml:"offscreen_margin"`
	MinVisible      *int `yaml:"min_visible"`
}

type RawSnap struct {
	Enabled   *bool `yaml:"enabled"`
	Threshold *int  `yaml:"threshold"`
}

type RawShake struct {
	Enabled   *bool `yaml:"enabled"`
	Reversals *int  `yaml:"reversals"`
	WindowMS  *int  `yaml:"window_ms"`
}

type RawAnimation struct {
	PaintDelayMS    *int     `yaml:"paint_delay_ms"`
	OpenMS          *int     `yaml:"open_ms"`
	CloseMS         *int     `yaml:"close_ms"`
	LayoutMS        *int     `yaml:"layout_ms"`
	SpringFrequency *float64 `yaml:"spring_frequency"`
	SpringDamping   *float64 `yaml:"spring_damping"`
}

type RawContentType struct {
	Renderer *string `yaml:"renderer"`
	Width    *int    `yaml:"width"`
	Height   *int    `yaml:"height"`
}

type RawConfig struct {
	Include      IncludeList               `yaml:"include"`
	LogLevel     *string                   `yaml:"log_level"`
	Viewport     *RawViewport              `yaml:"viewport"`
	Window       *RawWindow                `yaml:"window"`
	Snap         *RawSnap                  `yaml:"snap"`
	Shake        *RawShake                 `yaml:"shake"`
	Animation    *RawAnimation             `yaml:"animation"`
	ContentTypes map[string]RawContentType `yaml:"content_types"`
	// Catalog replaces the whole list; entries are not merged by id.
	Catalog []content.Item `yaml:"catalog"`
}

// pick returns overlay when it is set, otherwise base.
func pick[T any](base, overlay *T) *T {
	if overlay != nil {
		return overlay
	}
	return base
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	out.LogLevel = pick(out.LogLevel, overlay.LogLevel)

	if overlay.Viewport != nil {
		base := RawViewport{}
		if out.Viewport != nil {
			base = *out.Viewport
		}
		merged := mergeRawViewport(base, *overlay.Viewport)
		out.Viewport = &merged
	}
	if overlay.Window != nil {
		base := RawWindow{}
		if out.Window != nil {
			base = *out.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	if overlay.Snap != nil {
		base := RawSnap{}
		if out.Snap != nil {
			base = *out.Snap
		}
		out.Snap = &RawSnap{
			Enabled:   pick(base.Enabled, overlay.Snap.Enabled),
			Threshold: pick(base.Threshold, overlay.Snap.Threshold),
		}
	}
	if overlay.Shake != nil {
		base := RawShake{}
		if out.Shake != nil {
			base = *out.Shake
		}
		out.Shake = &RawShake{
			Enabled:   pick(base.Enabled, overlay.Shake.Enabled),
			Reversals: pick(base.Reversals, overlay.Shake.Reversals),
			WindowMS:  pick(base.WindowMS, overlay.Shake.WindowMS),
		}
	}
	if overlay.Animation != nil {
		base := RawAnimation{}
		if out.Animation != nil {
			base = *out.Animation
		}
		merged := mergeRawAnimation(base, *overlay.Animation)
		out.Animation = &merged
	}

	if overlay.ContentTypes != nil {
		merged := make(map[string]RawContentType, len(out.ContentTypes)+len(overlay.ContentTypes))
		for name, ct := range out.ContentTypes {
			merged[name] = ct
		}
		for name, ct := range overlay.ContentTypes {
			base := merged[name]
			merged[name] = RawContentType{
				Renderer: pick(base.Renderer, ct.Renderer),
				Width:    pick(base.Width, ct.Width),
				Height:   pick(base.Height, ct.Height),
			}
		}
		out.ContentTypes = merged
	}

	if overlay.Catalog != nil {
		out.Catalog = overlay.Catalog
	}

	return out
}

func mergeRawViewport(base RawViewport, overlay RawViewport) RawViewport {
	return RawViewport{
		Source:           pick(base.Source, overlay.Source),
		Display:          pick(base.Display, overlay.Display),
		Width:            pick(base.Width, overlay.Width),
		Height:           pick(base.Height, overlay.Height),
		MenuBarHeight:    pick(base.MenuBarHeight, overlay.MenuBarHeight),
		DockHeight:       pick(base.DockHeight, overlay.DockHeight),
		MobileBreakpoint: pick(base.MobileBreakpoint, overlay.MobileBreakpoint),
		MobileMargin:     pick(base.MobileMargin, overlay.MobileMargin),
		PollSeconds:      pick(base.PollSeconds, overlay.PollSeconds),
	}
}

func mergeRawWindow(base RawWindow, overlay RawWindow) RawWindow {
	return RawWindow{
		DefaultWidth:    pick(base.DefaultWidth, overlay.DefaultWidth),
		DefaultHeight:   pick(base.DefaultHeight, overlay.DefaultHeight),
		MinWidth:        pick(base.MinWidth, overlay.MinWidth),
		MinHeight:       pick(base.MinHeight, overlay.MinHeight),
		CascadeOriginX:  pick(base.CascadeOriginX, overlay.CascadeOriginX),
		CascadeOriginY:  pick(base.CascadeOriginY, overlay.CascadeOriginY),
		CascadeStep:     pick(base.CascadeStep, overlay.CascadeStep),
		OffscreenMargin: pick(base.OffscreenMargin, overlay.OffscreenMargin),
		MinVisible:      pick(base.MinVisible, overlay.MinVisible),
	}
}

func mergeRawAnimation(base RawAnimation, overlay RawAnimation) RawAnimation {
	return RawAnimation{
		PaintDelayMS:    pick(base.PaintDelayMS, overlay.PaintDelayMS),
		OpenMS:          pick(base.OpenMS, overlay.OpenMS),
		CloseMS:         pick(base.CloseMS, overlay.CloseMS),
		LayoutMS:        pick(base.LayoutMS, overlay.LayoutMS),
		SpringFrequency: pick(base.SpringFrequency, overlay.SpringFrequency),
		SpringDamping:   pick(base.SpringDamping, overlay.SpringDamping),
	}
}
