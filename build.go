package cmsblog

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/views"
)

// Posts fetched and written at the same time during a static build.
const buildConcurrency = 4

// BuildStats summarises a static export.
type BuildStats struct {
	Posts   int
	Skipped int
}

// Build exports the published site as static files under outDir: the home
// page, one directory per post holding index.html and index.md, the feed,
// the sitemap, robots.txt, a 404 page and the stylesheet. Drafts are never
// exported.
func (a *App) Build(ctx context.Context, outDir string) (BuildStats, error) {
	ctx = slogctx.NewCtx(ctx, a.logger)
	log := slogctx.FromCtx(ctx)
	var stats BuildStats

	posts, err := a.Source.Posts(ctx, false)
	if err != nil {
		return stats, fmt.Errorf("cmsblog: list posts: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("cmsblog: create %s: %w", outDir, err)
	}


	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(buildConcurrency)
	written := make([]bool, len(posts))
	for i, p := range posts {
		if !safeSlug(p.Slug) {
			log.WarnContext(ctx, "skipping post with unusable slug", slog.String("Slug", p.Slug))
			continue
		}
		g.Go(func() error {
			ok, err := a.buildPost(gctx, outDir, p.Slug)
			written[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	var published []contentful.Post
	for i, ok := range written {
		if ok {
			published = append(published, posts[i])
			stats.Posts++
		} else {
			stats.Skipped++
		}
	}

	// The home page only links to posts that were written.
	site := a.site()
	if err := writeComponent(ctx, filepath.Join(outDir, "index.html"), a.Views.Home(views.HomePage{Site: site, Posts: published})); err != nil {
		return stats, err
	}
	if err := writeComponent(ctx, filepath.Join(outDir, "404.html"), a.Views.NotFound(site)); err != nil {
		return stats, err
	}
	if err := writeFile(filepath.Join(outDir, "feed.xml"), func(b *bytes.Buffer) error {
		return writeRSS(b, a.Config, published)
	}); err != nil {
		return stats, err
	}
	if err := writeFile(filepath.Join(outDir, "sitemap.xml"), func(b *bytes.Buffer) error {
		return writeSitemap(b, a.Config, published)
	}); err != nil {
		return stats, err
	}
	if err := writeFile(filepath.Join(outDir, "robots.txt"), func(b *bytes.Buffer) error {
		_, err := b.WriteString(robotsTxt(a.Config))
		return err
	}); err != nil {
		return stats, err
	}
	if err := copyEmbedded(filepath.Join(outDir, "public")); err != nil {
		return stats, err
	}

	log.InfoContext(ctx, "static build complete",
		slog.String("Out", outDir),
		slog.Int("Posts", stats.Posts),
		slog.Int("Skipped", stats.Skipped))
	return stats, nil
}

// buildPost writes one post directory. It reports false when the post
// disappeared between listing and fetching.
func (a *App) buildPost(ctx context.Context, outDir, slug string) (bool, error) {
	page, err := a.Source.PostWithRelated(ctx, slug, false)
	if err != nil {
		return false, fmt.Errorf("cmsblog: fetch post %q: %w", slug, err)
	}
	if page.Post == nil {
		slogctx.FromCtx(ctx).WarnContext(ctx, "post vanished during build", slog.String("Slug", slug))
		return false, nil
	}

	dir := filepath.Join(outDir, "posts", slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("cmsblog: create %s: %w", dir, err)
	}
	cmp := a.Views.Post(views.PostPage{Site: a.site(), Post: *page.Post, Related: page.Related})
	if err := writeComponent(ctx, filepath.Join(dir, "index.html"), cmp); err != nil {
		return false, err
	}
	md, err := Markdown(*page.Post)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(md), 0o644); err != nil {
		return false, fmt.Errorf("cmsblog: write markdown for %q: %w", slug, err)
	}
	return true, nil
}

func writeComponent(ctx context.Context, name string, cmp templ.Component) error {
	return writeFile(name, func(b *bytes.Buffer) error {
		return cmp.Render(ctx, b)
	})
}

func writeFile(name string, fill func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("cmsblog: render %s: %w", name, err)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cmsblog: write %s: %w", name, err)
	}
	return nil
}

func copyEmbedded(dst string) error {
	sub, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("cmsblog: create %s: %w", dst, err)
	}
	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(sub, p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
