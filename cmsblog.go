// Package cmsblog is a blog front-end that renders posts managed in
// Contentful. It serves them live with Echo or exports them as a static site.
//
// Pages are templ components supplied through ViewFuncs; DefaultViews uses
// the components from the views package.
package cmsblog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/cmsblog/views"
)

// ViewFuncs holds the components the app calls when rendering pages. Any nil
// field falls back to the matching component from DefaultViews.
type ViewFuncs struct {
	Home        func(views.HomePage) templ.Component
	Post        func(views.PostPage) templ.Component
	NotFound    func(views.SiteConfig) templ.Component
	ServerError func(views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) setDefaults() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central application. It wires together the post source, cache,
// handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source PostSource
	Cache  *PostCache
	Views  ViewFuncs

	logger       *slog.Logger
	draftLimiter *AttemptLimiter
	customRoutes []func(*App)
	staticDir    string
	setupOnce    sync.Once
}

// New creates an App that reads posts from source.
func New(cfg SiteConfig, source PostSource, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Source:    source,
		Views:     v,
		logger:    slog.Default(),
		staticDir: "static",
	}
	a.Echo.HideBanner = true
	a.Cache = NewPostCache(source, cfg.PostCacheTTL)
	a.draftLimiter = NewAttemptLimiter(cfg.DraftAttempts, time.Minute)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler sets up middleware and routes on first use and returns the app as
// an http.Handler.
func (a *App) Handler() http.Handler {
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
	return a.Echo
}

// Start serves the site on Config.Addr until the server is shut down.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("cmsblog: SessionSecret is required")
	}
	a.Handler()
	a.logger.Info("starting server", slog.String("Addr", a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet first, then the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET(views.StylesheetPath, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/posts/:slug/index.md", a.handlePostMarkdown)

	e.GET("/api/draft", a.handleEnableDraft)
	e.GET(views.DisableDraftPath, handleDisableDraft)
	e.POST("/api/revalidate", a.handleRevalidate)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
