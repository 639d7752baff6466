package daemon

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/deskwm/internal/anim"
	"github.com/1broseidon/deskwm/internal/content"
	"github.com/1broseidon/deskwm/internal/geom"
	"github.com/1broseidon/deskwm/internal/wm"
)

type fakeProbe struct {
	size geom.Size
	err  error
}

func (p *fakeProbe) Size() (geom.Size, error) { return p.size, p.err }

type recordingTarget struct {
	calls []geom.Size
}

func (r *recordingTarget) ResizeViewport(width, height int) bool {
	r.calls = append(r.calls, geom.Size{Width: width, Height: height})
	return width > 0 && height > 0
}

func TestReconciler_AppliesOnlyChanges(t *testing.T) {
	probe := &fakeProbe{size: geom.Size{Width: 1920, Height: 1080}}
	target := &recordingTarget{}
	r := NewReconciler(ReconcilerConfig{Interval: time.Second}, probe, target)

	r.ReconcileNow()
	r.ReconcileNow()
	if len(target.calls) != 1 {
		t.Fatalf("expected 1 resize, got %v", target.calls)
	}

	probe.size = geom.Size{Width: 2560, Height: 1440}
	r.ReconcileNow()
	if len(target.calls) != 2 || target.calls[1].Width != 2560 {
		t.Fatalf("expected resize to 2560, got %v", target.calls)
	}

	r.Forget()
	r.ReconcileNow()
	if len(target.calls) != 3 {
		t.Fatalf("expected resize after Forget, got %v", target.calls)
	}
}

func TestReconciler_ProbeErrorAndRejectedSize(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	probe := &fakeProbe{err: errors.New("no display")}
	target := &recordingTarget{}
	r := NewReconciler(ReconcilerConfig{Logger: logger}, probe, target)

	r.ReconcileNow()
	if len(target.calls) != 0 {
		t.Fatalf("expected no resize on probe error, got %v", target.calls)
	}
	if !strings.Contains(buf.String(), "no display") {
		t.Fatalf("expected probe error logged, got %q", buf.String())
	}

	probe.err = nil
	probe.size = geom.Size{Width: 0, Height: 900}
	r.ReconcileNow()
	r.ReconcileNow()
	if len(target.calls) != 2 {
		t.Fatalf("rejected size should be retried, got %v", target.calls)
	}
}

func TestEventJournal_RecordsManagerEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	clock := anim.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := wm.New(wm.DefaultSettings(), wm.WithClock(clock))
	j := NewEventJournal(logger, 3)
	detach := j.Attach(m)

	id := m.Open(content.Item{ID: "notes", Title: "Notes", Type: content.TypeNotes}, nil)
	m.Minimize(id)
	m.Restore(id)

	if got := j.Count(wm.EventOpened); got != 1 {
		t.Fatalf("opened count = %d", got)
	}
	recent := j.Recent()
	if len(recent) != 3 {
		t.Fatalf("expected journal capped at 3, got %d", len(recent))
	}
	if recent[len(recent)-1].Kind != wm.EventFocused {
		t.Fatalf("expected restore to end with focus, got %+v", recent)
	}

	out := buf.String()
	if !strings.Contains(out, "window opened") || !strings.Contains(out, "window_id=window-notes") {
		t.Fatalf("expected open logged, got %q", out)
	}
	if strings.Contains(out, "window focused") {
		t.Fatalf("focus should log at debug only, got %q", out)
	}

	detach()
	m.Close(id)
	if j.Count(wm.EventClosing) != 0 {
		t.Fatalf("expected no events after detach")
	}
}
