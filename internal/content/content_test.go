package content

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geom"
)

func TestRegistry_BuiltinLookup(t *testing.T) {
	r := NewRegistry(nil)

	if got := r.Renderer(TypeBlog); got != "reader" {
		t.Fatalf("blog renderer = %q, want reader", got)
	}
	size, ok := r.SizeFor(TypeBrowser)
	if !ok || size != (geom.Size{Width: 1024, Height: 720}) {
		t.Fatalf("browser size = %+v (%v)", size, ok)
	}
	if _, ok := r.SizeFor(TypeNotes); ok {
		t.Fatalf("notes should use the default size")
	}
}

func TestRegistry_UnknownFallsBackToGeneric(t *testing.T) {
	r := NewRegistry(nil)
	if got := r.Renderer("hologram"); got != "generic" {
		t.Fatalf("unknown type renderer = %q, want generic", got)
	}
	if got := r.Renderer(" BLOG "); got != "reader" {
		t.Fatalf("type names should be normalized, got %q", got)
	}
}

func TestRegistry_Overrides(t *testing.T) {
	r := NewRegistry(map[Type]Spec{
		TypeNotes: {Size: geom.Size{Width: 640, Height: 480}},
		"slides":  {Renderer: "deck", Size: geom.Size{Width: 1200, Height: 800}},
		TypeBlog:  {Renderer: "markdown"},
	})

	if size, ok := r.SizeFor(TypeNotes); !ok || size.Width != 640 {
		t.Fatalf("notes override not applied: %+v", size)
	}
	if r.Renderer(TypeNotes) != "notes" {
		t.Fatalf("size-only override should keep renderer")
	}
	if r.Renderer("slides") != "deck" {
		t.Fatalf("new type not registered")
	}
	if size, _ := r.SizeFor(TypeBlog); size.Width != 900 {
		t.Fatalf("renderer-only override should keep size, got %+v", size)
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog([]Item{
		{ID: "about-me", Title: "About Me", Type: "About"},
		{ID: " notes "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it, ok := c.Lookup("notes")
	if !ok {
		t.Fatalf("expected trimmed id lookup to succeed")
	}
	if it.Title != "notes" || it.Type != TypeGeneric {
		t.Fatalf("defaults not applied: %+v", it)
	}
	if about, _ := c.Lookup("about-me"); about.Type != TypeAbout {
		t.Fatalf("type not normalized: %q", about.Type)
	}

	if _, err := NewCatalog([]Item{{ID: "a"}, {ID: "a"}}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := NewCatalog([]Item{{ID: ""}}); err == nil {
		t.Fatalf("expected empty id error")
	}
}
