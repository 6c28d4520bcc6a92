package cmsblog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	slogctx "github.com/veqryn/slog-context"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/views"
)

// listPosts serves drafts straight from the source and published posts from
// the cache.
func (a *App) listPosts(ctx context.Context, draft bool) ([]contentful.Post, error) {
	if draft {
		return a.Source.Posts(ctx, true)
	}
	return a.Cache.ListPosts(ctx)
}

func (a *App) postWithRelated(ctx context.Context, slug string, draft bool) (contentful.PostWithRelated, error) {
	if draft {
		return a.Source.PostWithRelated(ctx, slug, true)
	}
	return a.Cache.GetPostWithRelated(ctx, slug)
}

func (a *App) handleHome(c echo.Context) error {
	draft := IsDraftMode(c)
	posts, err := a.listPosts(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(views.HomePage{
		Site:  a.site(),
		Posts: posts,
		Draft: draft,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	draft := IsDraftMode(c)
	page, err := a.postWithRelated(c.Request().Context(), c.Param("slug"), draft)
	if err != nil {
		return err
	}
	if page.Post == nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
	}
	return Render(c, a.Views.Post(views.PostPage{
		Site:    a.site(),
		Post:    *page.Post,
		Related: page.Related,
		Draft:   draft,
	}))
}

func (a *App) handlePostMarkdown(c echo.Context) error {
	draft := IsDraftMode(c)
	page, err := a.postWithRelated(c.Request().Context(), c.Param("slug"), draft)
	if err != nil {
		return err
	}
	if page.Post == nil {
		return echo.ErrNotFound
	}
	md, err := Markdown(*page.Post)
	if err != nil {
		return err
	}
	if draft {
		c.Response().Header().Set("Cache-Control", "no-store")
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, robotsTxt(a.Config))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		ctx := c.Request().Context()
		slogctx.FromCtx(ctx).ErrorContext(ctx, "server error",
			slog.String("Path", c.Request().URL.Path),
			slog.Any("Error", err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
