package anim

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/1broseidon/deskwm/internal/geom"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseClosed, PhaseOpening, true},
		{PhaseOpening, PhaseOpen, true},
		{PhaseOpen, PhaseClosing, true},
		{PhaseOpening, PhaseClosing, true},
		{PhaseClosing, PhaseRemoved, true},
		{PhaseClosing, PhaseOpening, true},
		{PhaseOpen, PhaseOpening, false},
		{PhaseClosing, PhaseClosing, false},
		{PhaseRemoved, PhaseOpening, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPhaseText(t *testing.T) {
	b, err := json.Marshal(map[string]Phase{"p": PhaseClosing})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"p":"closing"}` {
		t.Fatalf("got %s", b)
	}
	var out map[string]Phase
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["p"] != PhaseClosing {
		t.Fatalf("round trip = %v", out["p"])
	}
}

func TestManualClock_FiresInOrder(t *testing.T) {
	c := NewManualClock(epoch)
	var order []string

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "b") })
	c.AfterFunc(10*time.Millisecond, func() {
		order = append(order, "a")
		// Scheduled from a callback and due inside the same Advance.
		c.AfterFunc(5*time.Millisecond, func() { order = append(order, "a2") })
	})
	stopped := c.AfterFunc(20*time.Millisecond, func() { order = append(order, "never") })
	if !stopped.Stop() {
		t.Fatalf("Stop on a pending timer should report true")
	}

	c.Advance(25 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "a2" {
		t.Fatalf("after 25ms order = %v", order)
	}
	if got := c.Now().Sub(epoch); got != 25*time.Millisecond {
		t.Fatalf("clock now = %v", got)
	}

	c.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "b" {
		t.Fatalf("after 35ms order = %v", order)
	}
	if c.Pending() != 0 {
		t.Fatalf("pending = %d", c.Pending())
	}
	if stopped.Stop() {
		t.Fatalf("second Stop should report false")
	}
}

func TestSequencer_ReplaceAndClaim(t *testing.T) {
	c := NewManualClock(epoch)
	s := NewSequencer(c)

	var fired []uint64
	fire := func(token uint64) {
		if s.Claim("w", token) {
			fired = append(fired, token)
		}
	}

	first := s.Schedule("w", 10*time.Millisecond, fire)
	second := s.Schedule("w", 20*time.Millisecond, fire)
	if first == second {
		t.Fatalf("tokens should differ")
	}

	c.Advance(50 * time.Millisecond)
	if len(fired) != 1 || fired[0] != second {
		t.Fatalf("fired = %v, want only %d", fired, second)
	}
	if s.Pending("w") {
		t.Fatalf("claimed transition should not be pending")
	}
}

func TestSequencer_StaleToken(t *testing.T) {
	s := NewSequencer(NewManualClock(epoch))
	token := s.Schedule("w", time.Second, func(uint64) {})
	if !s.Cancel("w") {
		t.Fatalf("cancel should report a pending step")
	}
	if s.Claim("w", token) {
		t.Fatalf("cancelled token must not be claimable")
	}
	if s.Cancel("w") {
		t.Fatalf("second cancel should report false")
	}
}

func TestCurves_Endpoints(t *testing.T) {
	curves := map[string]Curve{
		"linear":    Linear,
		"easeIn":    EaseIn,
		"easeInOut": EaseInOut,
		"spring":    NewSpringCurve(8, 0.45),
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			if c.At(0) != 0 || c.At(-1) != 0 {
				t.Fatalf("At(0) = %v", c.At(0))
			}
			if c.At(1) != 1 || c.At(2) != 1 {
				t.Fatalf("At(1) = %v", c.At(1))
			}
		})
	}
}

func TestSpringCurve_Overshoots(t *testing.T) {
	c := NewSpringCurve(8, 0.45)
	if c.Peak() <= 1 {
		t.Fatalf("under-damped spring should overshoot, peak = %v", c.Peak())
	}
	if EaseIn.At(0.5) >= 0.5 {
		t.Fatalf("ease-in should lag linear at midpoint")
	}
}

func TestCompute_Lifecycle(t *testing.T) {
	tm := DefaultTiming()
	target := geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}
	origin := geom.Rect{X: 10, Y: 800, Width: 48, Height: 48}

	closed := tm.Compute(State{Phase: PhaseClosed, Since: epoch, Target: target, Origin: &origin}, epoch)
	if closed.Rect != origin || closed.Opacity != 0 || closed.Interactive {
		t.Fatalf("closed frame = %+v", closed)
	}

	opening := tm.Compute(State{Phase: PhaseOpening, Since: epoch, Target: target, Origin: &origin}, epoch.Add(tm.Open))
	if opening.Rect != target || opening.Interactive {
		t.Fatalf("opening frame at end = %+v", opening)
	}

	open := tm.Compute(State{Phase: PhaseOpen, Since: epoch, Target: target}, epoch)
	if !open.Interactive || open.Opacity != 1 || open.Rect != target {
		t.Fatalf("open frame = %+v", open)
	}

	closing := tm.Compute(State{Phase: PhaseClosing, Since: epoch, Target: target}, epoch.Add(tm.Close))
	want := geom.CenterCollapsed(target)
	if closing.Rect != want || closing.Opacity != 0 {
		t.Fatalf("closing frame at end = %+v, want rect %+v", closing, want)
	}
}

func TestTransition_At(t *testing.T) {
	tr := Transition{
		From:     geom.Rect{X: 0, Y: 0, Width: 100, Height: 100},
		To:       geom.Rect{X: 100, Y: 100, Width: 200, Height: 200},
		Start:    epoch,
		Duration: 100 * time.Millisecond,
	}
	mid, done := tr.At(epoch.Add(50 * time.Millisecond))
	if done {
		t.Fatalf("transition should be in flight")
	}
	if mid.X != 50 || mid.Width != 150 {
		t.Fatalf("midpoint = %+v", mid)
	}
	end, done := tr.At(epoch.Add(time.Second))
	if !done || end != tr.To {
		t.Fatalf("end = %+v done=%v", end, done)
	}
}
