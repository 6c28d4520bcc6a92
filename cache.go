package cmsblog

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/cmsblog/contentful"
)

// PostCache is an in-memory cache of published posts with TTL. It holds the
// post listing and every post page looked up by slug. Drafts never go
// through it.
type PostCache struct {
	mu      sync.RWMutex
	posts   []contentful.Post
	fetched time.Time
	pages   map[string]cachedPage
	gen     uint64 // bumped by Invalidate
	ttl     time.Duration
	source  PostSource
}

type cachedPage struct {
	page    contentful.PostWithRelated
	fetched time.Time
}

// NewPostCache creates a PostCache backed by the given source.
func NewPostCache(s PostSource, ttl time.Duration) *PostCache {
	return &PostCache{source: s, ttl: ttl, pages: make(map[string]cachedPage)}
}

func (c *PostCache) fresh(t time.Time) bool {
	return time.Since(t) < c.ttl
}

func (c *PostCache) valid() bool {
	return c.posts != nil && c.fresh(c.fetched)
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.pages = make(map[string]cachedPage)
	c.gen++
	c.mu.Unlock()
}

// ListPosts returns all published posts, newest first.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ListPosts(ctx context.Context) ([]contentful.Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.source.Posts(ctx, false)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []contentful.Post{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// GetPostWithRelated returns a published post and its related posts. A slug
// that does not exist yields a nil Post and is not cached.
func (c *PostCache) GetPostWithRelated(ctx context.Context, slug string) (contentful.PostWithRelated, error) {
	c.mu.RLock()
	entry, ok := c.pages[slug]
	gen := c.gen
	c.mu.RUnlock()
	if ok && c.fresh(entry.fetched) {
		return entry.page, nil
	}

	page, err := c.source.PostWithRelated(ctx, slug, false)
	if err != nil {
		return contentful.PostWithRelated{}, err
	}
	if page.Post == nil {
		return page, nil
	}
	// A fetch that overlapped an Invalidate may hold pre-publish content.
	c.mu.Lock()
	if c.gen == gen {
		c.pages[slug] = cachedPage{page: page, fetched: time.Now()}
	}
	c.mu.Unlock()
	return page, nil
}
