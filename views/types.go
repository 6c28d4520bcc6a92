// Package views holds the templ components and pages of the blog.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import "github.com/eringen/cmsblog/contentful"

// SiteConfig holds the site-wide settings every page needs.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// HomePage is the data behind the index page. The first post is the hero,
// the rest are listed under "More Stories".
type HomePage struct {
	Site  SiteConfig
	Posts []contentful.Post
	Draft bool
}

// PostPage is the data behind a single post page.
type PostPage struct {
	Site    SiteConfig
	Post    contentful.Post
	Related []contentful.Post
	Draft   bool
}
