package config

import "github.com/1broseidon/deskwm/internal/content"

// BuiltinCatalog returns the desktop items available without any config.
//
// A catalog in the config file replaces this list entirely.
func BuiltinCatalog() []content.Item {
	return []content.Item{
		{ID: "about-me", Title: "About Me", Type: content.TypeAbout},
		{ID: "notes", Title: "Notes", Type: content.TypeNotes},
		{ID: "blog", Title: "Blog", Type: content.TypeBlog},
		{ID: "books", Title: "Bookshelf", Type: content.TypeBooks},
		{ID: "terminal", Title: "Terminal", Type: content.TypeTerminal},
		{ID: "mail", Title: "Contact", Type: content.TypeMail},
		{ID: "browser", Title: "Links", Type: content.TypeBrowser},
		{ID: "sitemap", Title: "Sitemap", Type: content.TypeSitemap},
		{ID: "resume", Title: "Resume.pdf", Type: content.TypePDF},
		{ID: "photos", Title: "Photos", Type: content.TypePhotos},
		{ID: "finder", Title: "Finder", Type: content.TypeFinder},
	}
}
