package cmsblog

import (
	"log/slog"
	"time"
)

// SiteConfig holds all configuration for a site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags

	Addr string // Listen address (default ":3000")

	SessionSecret    string // Required by Start: session encryption secret
	PreviewSecret    string // Shared secret for /api/draft; empty disables draft mode
	RevalidateSecret string // Shared secret for /api/revalidate; empty disables it
	CookieSecure     bool   // Set true for HTTPS

	PostCacheTTL  time.Duration // Published post cache TTL (default 5min)
	DraftAttempts int           // Failed draft/revalidate attempts per IP per minute (default 5)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.DraftAttempts == 0 {
		c.DraftAttempts = 5
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public (default "static").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger attached to every request context.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
