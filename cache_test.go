package cmsblog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/eringen/cmsblog/contentful"
)

func TestPostCache(t *testing.T) {
	g := gomega.NewWithT(t)
	src := NewMockPostSource(gomock.NewController(t))
	cache := NewPostCache(src, time.Hour)
	ctx := context.Background()

	src.EXPECT().Posts(gomock.Any(), false).Return(nil, nil).Times(2)
	posts, err := cache.ListPosts(ctx)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(posts).ToNot(gomega.BeNil())
	g.Expect(posts).To(gomega.BeEmpty())
	_, _ = cache.ListPosts(ctx)
	cache.Invalidate()
	_, _ = cache.ListPosts(ctx)

	hello := testPost("hello", "Hello")
	src.EXPECT().PostWithRelated(gomock.Any(), "hello", false).Return(contentful.PostWithRelated{Post: &hello}, nil).Times(1)
	for i := 0; i < 3; i++ {
		page, err := cache.GetPostWithRelated(ctx, "hello")
		g.Expect(err).ToNot(gomega.HaveOccurred())
		g.Expect(page.Post.Slug).To(gomega.Equal("hello"))
	}
}

func TestPostCacheErrorNotCached(t *testing.T) {
	g := gomega.NewWithT(t)
	src := NewMockPostSource(gomock.NewController(t))
	cache := NewPostCache(src, time.Hour)
	boom := errors.New("boom")

	gomock.InOrder(
		src.EXPECT().Posts(gomock.Any(), false).Return(nil, boom),
		src.EXPECT().Posts(gomock.Any(), false).Return([]contentful.Post{testPost("a", "A")}, nil),
	)
	_, err := cache.ListPosts(context.Background())
	g.Expect(err).To(gomega.MatchError(boom))
	posts, err := cache.ListPosts(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(posts).To(gomega.HaveLen(1))
}

func TestPostCacheExpires(t *testing.T) {
	g := gomega.NewWithT(t)
	src := NewMockPostSource(gomock.NewController(t))
	cache := NewPostCache(src, time.Nanosecond)

	src.EXPECT().Posts(gomock.Any(), false).Return([]contentful.Post{}, nil).Times(2)
	_, err := cache.ListPosts(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
	time.Sleep(time.Millisecond)
	_, err = cache.ListPosts(context.Background())
	g.Expect(err).ToNot(gomega.HaveOccurred())
}

func TestPostCacheInvalidateDuringFetch(t *testing.T) {
	g := gomega.NewWithT(t)
	src := NewMockPostSource(gomock.NewController(t))
	cache := NewPostCache(src, time.Hour)
	ctx := context.Background()

	stale := testPost("hello", "Old title")
	fresh := testPost("hello", "New title")
	gomock.InOrder(
		src.EXPECT().PostWithRelated(gomock.Any(), "hello", false).
			DoAndReturn(func(context.Context, string, bool) (contentful.PostWithRelated, error) {
				cache.Invalidate()
				return contentful.PostWithRelated{Post: &stale}, nil
			}),
		src.EXPECT().PostWithRelated(gomock.Any(), "hello", false).
			Return(contentful.PostWithRelated{Post: &fresh}, nil),
	)

	page, err := cache.GetPostWithRelated(ctx, "hello")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(page.Post.Title).To(gomega.Equal("Old title"))

	page, err = cache.GetPostWithRelated(ctx, "hello")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(page.Post.Title).To(gomega.Equal("New title"))

	page, err = cache.GetPostWithRelated(ctx, "hello")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(page.Post.Title).To(gomega.Equal("New title"))
}
