// Package contentful fetches blog posts from the Contentful GraphQL API.
package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
)

// Bytes of a non-JSON body kept in the log line.
const logBodyLimit = 200

// Client queries one Contentful space. Every call is a single request with
// no retry; cancellation and deadlines come from the caller's context.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. Credentials are checked per call, so a Client with
// only published credentials can still serve published content.
func New(cfg Config, opts ...Option) *Client {
	cfg.setDefaults()
	c := &Client{cfg: cfg, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slogctx.FromCtx(ctx)
}

// Posts returns every post that has a slug, newest first, in the order
// Contentful returned them. When preview is set, drafts are included.
func (c *Client) Posts(ctx context.Context, preview bool) ([]Post, error) {
	env, err := c.query(ctx, allPostsQuery(preview), preview)
	if err != nil {
		return nil, err
	}
	return c.entries(ctx, env), nil
}

// Post returns the post with the given slug, or nil if there is none.
func (c *Client) Post(ctx context.Context, slug string, preview bool) (*Post, error) {
	env, err := c.query(ctx, postQuery(slug, preview), preview)
	if err != nil {
		return nil, err
	}
	return first(env), nil
}

// PreviewPost looks a post up including drafts. Draft mode is only switched on
// for slugs it finds.
func (c *Client) PreviewPost(ctx context.Context, slug string) (*Post, error) {
	return c.Post(ctx, slug, true)
}

// PostWithRelated returns the post with the given slug and up to two other
// posts, newest first. The two queries are independent and run concurrently.
func (c *Client) PostWithRelated(ctx context.Context, slug string, preview bool) (PostWithRelated, error) {
	if _, err := c.cfg.token(preview); err != nil {
		return PostWithRelated{}, err
	}

	var res PostWithRelated
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.Post(gctx, slug, preview)
		res.Post = p
		return err
	})
	g.Go(func() error {
		env, err := c.query(gctx, relatedPostsQuery(slug, preview), preview)
		if err != nil {
			return err
		}
		res.Related = c.entries(gctx, env)
		return nil
	})
	if err := g.Wait(); err != nil {
		return PostWithRelated{}, err
	}
	return res, nil
}

func first(env *envelope) *Post {
	items, _ := env.items()
	for _, w := range items {
		if w != nil {
			p := w.post()
			return &p
		}
	}
	return nil
}

// entries extracts the post list. A response without
// data.postCollection.items (typically a GraphQL error) yields no posts
// rather than an error.
func (c *Client) entries(ctx context.Context, env *envelope) []Post {
	items, ok := env.items()
	if !ok {
		c.log(ctx).ErrorContext(ctx, "failed to fetch posts from contentful",
			slog.Any("Errors", env.Errors))
		return []Post{}
	}
	posts := make([]Post, 0, len(items))
	for _, w := range items {
		if w == nil {
			continue
		}
		posts = append(posts, w.post())
	}
	return posts
}

type graphQLRequest struct {
	Query string `json:"query"`
}

func (c *Client) query(ctx context.Context, query string, preview bool) (*envelope, error) {
	token, err := c.cfg.token(preview)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("contentful: encode query: %w", err)
	}
	endpoint := c.cfg.Endpoint + url.PathEscape(c.cfg.SpaceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contentful: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		c.log(ctx).ErrorContext(ctx, "contentful api error",
			slog.Int("Status", resp.StatusCode),
			slog.String("Body", string(text)))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, logBodyLimit))
		c.log(ctx).ErrorContext(ctx, "expected json from contentful",
			slog.String("ContentType", contentType),
			slog.String("Body", string(text)))
		return nil, &ProtocolError{ContentType: contentType}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log(ctx).ErrorContext(ctx, "invalid json from contentful",
			slog.String("ContentType", contentType),
			slog.Any("Error", err))
		return nil, &ProtocolError{ContentType: contentType, Err: err}
	}
	return &env, nil
}
