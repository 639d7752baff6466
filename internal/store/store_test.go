package store

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func TestStore_InsertionOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"c", "a", "b"} {
		if !s.Insert(Window{ID: id, ZIndex: len(id)}) {
			t.Fatalf("insert %q failed", id)
		}
	}
	if s.Insert(Window{ID: "a"}) {
		t.Fatalf("duplicate insert should fail")
	}

	got := s.All()
	if len(got) != 3 || got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Fatalf("order = %+v", got)
	}

	s.Remove("a")
	got = s.All()
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("order after remove = %+v", got)
	}
	if w, ok := s.Get("b"); !ok || w.ID != "b" {
		t.Fatalf("index not rebuilt after remove")
	}
}

func TestStore_UpsertMissingIsNoop(t *testing.T) {
	s := New()
	called := false
	if s.Upsert("ghost", func(*Window) { called = true }) {
		t.Fatalf("upsert on missing id should report false")
	}
	if called || s.Len() != 0 {
		t.Fatalf("upsert on missing id must not mutate")
	}
}

func TestStore_UpsertCannotChangeID(t *testing.T) {
	s := New()
	s.Insert(Window{ID: "w"})
	s.Upsert("w", func(w *Window) {
		w.ID = "other"
		w.Rect = geom.Rect{X: 5}
	})
	w, ok := s.Get("w")
	if !ok || w.Rect.X != 5 {
		t.Fatalf("patch not applied: %+v", w)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	origin := geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	s.Insert(Window{ID: "w", Origin: &origin})

	all := s.All()
	all[0].Rect.X = 999
	all[0].Origin.X = 999

	w, _ := s.Get("w")
	if w.Rect.X != 0 || w.Origin.X != 1 {
		t.Fatalf("store state leaked through a copy: %+v origin %+v", w, *w.Origin)
	}
}

func TestStore_ActiveClearedOnRemove(t *testing.T) {
	s := New()
	s.Insert(Window{ID: "w"})
	s.SetActive("w")
	if s.Active() != "w" {
		t.Fatalf("active = %q", s.Active())
	}
	s.SetActive("ghost")
	if s.Active() != "" {
		t.Fatalf("unknown id should clear focus")
	}
	s.SetActive("w")
	s.Remove("w")
	if s.Active() != "" {
		t.Fatalf("removing the active window should clear focus")
	}
}

func TestMode_Variant(t *testing.T) {
	pre := geom.Rect{X: 10, Y: 20, Width: 300, Height: 200}
	w := Window{Mode: Snapped(SnapLeft, pre)}
	if !w.IsSnapped() || w.IsMaximized() {
		t.Fatalf("snapped window flags wrong")
	}
	if got, ok := w.PreSnapRect(); !ok || got != pre {
		t.Fatalf("pre-snap = %+v %v", got, ok)
	}

	w.Mode = Maximized()
	if w.IsSnapped() || !w.IsMaximized() {
		t.Fatalf("maximized window flags wrong")
	}
	if _, ok := w.PreSnapRect(); ok {
		t.Fatalf("pre-snap rect must only exist while snapped")
	}
}

func TestStore_MaxZSurvivesRemove(t *testing.T) {
	s := New()
	s.Insert(Window{ID: "a", ZIndex: 11})
	s.Insert(Window{ID: "b", ZIndex: 12})
	s.Upsert("a", func(w *Window) { w.ZIndex = 13 })
	if s.MaxZ() != 13 {
		t.Fatalf("MaxZ = %d, want 13", s.MaxZ())
	}
	s.Remove("a")
	s.Upsert("b", func(w *Window) { w.ZIndex = 5 })
	if s.MaxZ() != 13 {
		t.Fatalf("MaxZ dropped to %d after remove", s.MaxZ())
	}
}
