package cmsblog

import (
	"context"

	"github.com/eringen/cmsblog/contentful"
)

//go:generate mockgen -source=types.go -destination=mock_source_test.go -package=cmsblog

// PostSource is where the app reads posts from. *contentful.Client
// implements it. Preview reads include drafts.
type PostSource interface {
	Posts(ctx context.Context, preview bool) ([]contentful.Post, error)
	Post(ctx context.Context, slug string, preview bool) (*contentful.Post, error)
	PostWithRelated(ctx context.Context, slug string, preview bool) (contentful.PostWithRelated, error)
	PreviewPost(ctx context.Context, slug string) (*contentful.Post, error)
}

var _ PostSource = (*contentful.Client)(nil)
