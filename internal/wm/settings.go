package wm

import (
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/layout"
)

// Settings are the tunables of a Manager.
type Settings struct {
	Viewport  layout.Viewport
	Placement layout.Placement
	// MinVisible is how many pixels of a dropped window must stay on screen.
	MinVisible int

	SnapEnabled   bool
	SnapThreshold int

	ShakeEnabled   bool
	ShakeReversals int
	ShakeWindow    time.Duration

	Timing   anim.Timing
	Registry *content.Registry
}

// DefaultSettings returns the stock desktop behaviour.
func DefaultSettings() Settings {
	return Settings{
		Viewport:       layout.DefaultViewport(),
		Placement:      layout.DefaultPlacement(),
		MinVisible:     80,
		SnapEnabled:    true,
		SnapThreshold:  30,
		ShakeEnabled:   true,
		ShakeReversals: 6,
		ShakeWindow:    time.Second,
		Timing:         anim.DefaultTiming(),
		Registry:       content.NewRegistry(nil),
	}
}
