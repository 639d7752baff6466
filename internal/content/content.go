package content

import (
	"sort"
	"strings"

	"github.com/1broseidon/deskwm/internal/geom"
)

// Type identifies how an item is rendered and sized.
type Type string

const (
	TypeAbout    Type = "about"
	TypeNotes    Type = "notes"
	TypeBlog     Type = "blog"
	TypeBooks    Type = "books"
	TypeTerminal Type = "terminal"
	TypeMail     Type = "mail"
	TypeBrowser  Type = "browser"
	TypeSitemap  Type = "sitemap"
	TypePDF      Type = "pdf"
	TypePhotos   Type = "photos"
	TypeFinder   Type = "finder"
	TypeGeneric  Type = "generic"
)

// Item is a content descriptor owned by the catalog. The window manager
// only reads ID, Title and Type.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Type  Type   `json:"type" yaml:"type"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Spec describes how one content type is presented.
type Spec struct {
	// Renderer names the view a host uses for this type.
	Renderer string `json:"renderer" yaml:"renderer"`
	// Size overrides the default window size on wide viewports.
	// Zero means "use the default".
	Size geom.Size `json:"size" yaml:"size"`
}

// Registry maps content types to their presentation. It is the single
// place that knows per-type renderers and window sizes.
type Registry struct {
	specs map[Type]Spec
}

// BuiltinSpecs returns the built-in content type table.
func BuiltinSpecs() map[Type]Spec {
	return map[Type]Spec{
		TypeAbout:    {Renderer: "profile"},
		TypeNotes:    {Renderer: "notes"},
		TypeBlog:     {Renderer: "reader", Size: geom.Size{Width: 900, Height: 700}},
		TypeBooks:    {Renderer: "reader", Size: geom.Size{Width: 900, Height: 700}},
		TypeTerminal: {Renderer: "terminal"},
		TypeMail:     {Renderer: "composer"},
		TypeBrowser:  {Renderer: "browser", Size: geom.Size{Width: 1024, Height: 720}},
		TypeSitemap:  {Renderer: "sitemap", Size: geom.Size{Width: 1000, Height: 720}},
		TypePDF:      {Renderer: "document", Size: geom.Size{Width: 860, Height: 720}},
		TypePhotos:   {Renderer: "gallery"},
		TypeFinder:   {Renderer: "finder"},
		TypeGeneric:  {Renderer: "generic"},
	}
}

// NewRegistry builds a registry from the built-in table plus overrides.
// Override entries replace built-in ones field by field.
func NewRegistry(overrides map[Type]Spec) *Registry {
	specs := BuiltinSpecs()
	for t, o := range overrides {
		base := specs[t]
		if o.Renderer != "" {
			base.Renderer = o.Renderer
		}
		if o.Size.Width > 0 && o.Size.Height > 0 {
			base.Size = o.Size
		}
		if base.Renderer == "" {
			base.Renderer = specs[TypeGeneric].Renderer
		}
		specs[t] = base
	}
	return &Registry{specs: specs}
}

// Lookup returns the spec for t, falling back to the generic entry.
func (r *Registry) Lookup(t Type) Spec {
	if r == nil {
		return BuiltinSpecs()[TypeGeneric]
	}
	if spec, ok := r.specs[NormalizeType(t)]; ok {
		return spec
	}
	return r.specs[TypeGeneric]
}

// Renderer returns the renderer name for t.
func (r *Registry) Renderer(t Type) string {
	return r.Lookup(t).Renderer
}

// SizeFor returns the size override for t and whether one exists.
func (r *Registry) SizeFor(t Type) (geom.Size, bool) {
	s := r.Lookup(t).Size
	return s, s.Width > 0 && s.Height > 0
}

// Types returns every registered type, sorted.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.specs))
	for t := range r.specs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeType lowercases and trims a type name; empty becomes generic.
func NormalizeType(t Type) Type {
	n := Type(strings.ToLower(strings.TrimSpace(string(t))))
	if n == "" {
		return TypeGeneric
	}
	return n
}
