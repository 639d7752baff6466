package x11

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func TestChooseMonitor(t *testing.T) {
	left := Monitor{ID: 0, Name: "DP-1", Bounds: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	right := Monitor{ID: 1, Name: "DP-2", Bounds: geom.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}}
	primaryRight := right
	primaryRight.Primary = true

	tests := []struct {
		name     string
		monitors []Monitor
		pointer  *geom.Point
		want     string
		ok       bool
	}{
		{"none", nil, nil, "", false},
		{"primary wins", []Monitor{left, primaryRight}, &geom.Point{X: 10, Y: 10}, "DP-2", true},
		{"pointer", []Monitor{left, right}, &geom.Point{X: 2000, Y: 500}, "DP-2", true},
		{"pointer off every monitor", []Monitor{left, right}, &geom.Point{X: -5, Y: -5}, "DP-1", true},
		{"first", []Monitor{left, right}, nil, "DP-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chooseMonitor(tt.monitors, tt.pointer)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got.Name != tt.want {
				t.Fatalf("monitor = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	mon := geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	got, ok := intersect(mon, geom.Rect{X: 0, Y: 32, Width: 3840, Height: 1048})
	if !ok {
		t.Fatalf("expected overlap")
	}
	if want := (geom.Rect{X: 0, Y: 32, Width: 1920, Height: 1048}); got != want {
		t.Fatalf("intersect = %+v, want %+v", got, want)
	}

	if _, ok := intersect(mon, geom.Rect{X: 1920, Y: 0, Width: 100, Height: 100}); ok {
		t.Fatalf("touching rects should not overlap")
	}
}
