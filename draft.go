package cmsblog

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	slogctx "github.com/veqryn/slog-context"

	"github.com/eringen/cmsblog/views"
)

// Header carrying the revalidation secret. The "secret" query parameter is
// accepted as well.
const revalidateHeader = "X-Revalidate-Key"

func secretMatches(given, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}

// handleEnableDraft switches the session into draft mode and sends the
// reader to the post they asked to preview.
func (a *App) handleEnableDraft(c echo.Context) error {
	ip := c.RealIP()
	if !a.draftLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	if !secretMatches(c.QueryParam("secret"), a.Config.PreviewSecret) {
		a.draftLimiter.Record(ip)
		return c.String(http.StatusUnauthorized, "Invalid token")
	}
	slug := c.QueryParam("slug")
	if slug == "" {
		return c.String(http.StatusUnauthorized, "Invalid slug")
	}

	ctx := c.Request().Context()
	post, err := a.Source.PreviewPost(ctx, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return c.String(http.StatusUnauthorized, "Invalid slug")
	}
	if err := setDraftMode(c); err != nil {
		return err
	}
	slogctx.FromCtx(ctx).InfoContext(ctx, "draft mode enabled", slog.String("Slug", post.Slug))
	return c.Redirect(http.StatusTemporaryRedirect, views.PostPath(post.Slug))
}

func handleDisableDraft(c echo.Context) error {
	if err := clearDraftMode(c); err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.String(http.StatusOK, "Draft mode is disabled")
}

type revalidateResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

// handleRevalidate drops every cached post so the next request refetches
// from Contentful. Webhooks call it after content is published.
func (a *App) handleRevalidate(c echo.Context) error {
	ip := c.RealIP()
	if !a.draftLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	secret := c.Request().Header.Get(revalidateHeader)
	if secret == "" {
		secret = c.QueryParam("secret")
	}
	if !secretMatches(secret, a.Config.RevalidateSecret) {
		a.draftLimiter.Record(ip)
		return c.String(http.StatusUnauthorized, "Invalid secret")
	}
	a.Cache.Invalidate()
	ctx := c.Request().Context()
	slogctx.FromCtx(ctx).InfoContext(ctx, "post cache invalidated")
	return c.JSON(http.StatusOK, revalidateResponse{Revalidated: true, Now: time.Now().UnixMilli()})
}
