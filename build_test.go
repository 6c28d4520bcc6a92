package cmsblog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/richtext"
)

func richDoc(t *testing.T, raw string) *richtext.Document {
	t.Helper()
	var doc richtext.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	return &doc
}

const articleJSON = `{"json":{"nodeType":"document","content":[
	{"nodeType":"heading-2","content":[{"nodeType":"text","value":"Section","marks":[]}]},
	{"nodeType":"paragraph","content":[
		{"nodeType":"text","value":"Plain and ","marks":[]},
		{"nodeType":"text","value":"bold","marks":[{"type":"bold"}]}
	]},
	{"nodeType":"unordered-list","content":[
		{"nodeType":"list-item","content":[{"nodeType":"paragraph","content":[{"nodeType":"text","value":"first item","marks":[]}]}]}
	]}
]}}`

func TestMarkdown(t *testing.T) {
	g := gomega.NewWithT(t)
	post := testPost("hello", "Hello World")
	post.Content = richDoc(t, articleJSON)

	md, err := Markdown(post)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(md).To(gomega.HavePrefix("# Hello World\n\n_By John Doe, October 21, 2025_\n\n"))
	g.Expect(md).To(gomega.ContainSubstring("## Section"))
	g.Expect(md).To(gomega.ContainSubstring("Plain and **bold**"))
	g.Expect(md).To(gomega.ContainSubstring("- first item"))
}

func TestMarkdownWithoutContent(t *testing.T) {
	g := gomega.NewWithT(t)

	md, err := Markdown(contentful.Post{Slug: "bare", Title: "Bare"})
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(md).To(gomega.Equal("# Bare\n\n"))
}

func TestBuild(t *testing.T) {
	g := gomega.NewWithT(t)
	a, src := newTestApp(t)
	out := t.TempDir()

	first := testPost("first", "First Post")
	first.Content = richDoc(t, articleJSON)
	second := testPost("second", "Second Post")
	posts := []contentful.Post{
		first,
		second,
		testPost("gone", "Gone"),
		testPost("../escape", "Escape"),
	}

	src.EXPECT().Posts(gomock.Any(), false).Return(posts, nil)
	src.EXPECT().PostWithRelated(gomock.Any(), "first", false).
		Return(contentful.PostWithRelated{Post: &first, Related: []contentful.Post{second}}, nil)
	src.EXPECT().PostWithRelated(gomock.Any(), "second", false).
		Return(contentful.PostWithRelated{Post: &second, Related: []contentful.Post{first}}, nil)
	src.EXPECT().PostWithRelated(gomock.Any(), "gone", false).
		Return(contentful.PostWithRelated{}, nil)

	stats, err := a.Build(context.Background(), out)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(stats).To(gomega.Equal(BuildStats{Posts: 2, Skipped: 2}))

	for _, name := range []string{
		"index.html",
		"404.html",
		"feed.xml",
		"sitemap.xml",
		"robots.txt",
		"public/styles.css",
		"posts/first/index.html",
		"posts/first/index.md",
		"posts/second/index.html",
		"posts/second/index.md",
	} {
		g.Expect(filepath.Join(out, name)).To(gomega.BeAnExistingFile(), name)
	}
	g.Expect(filepath.Join(out, "posts", "gone")).ToNot(gomega.BeAnExistingFile())
	g.Expect(filepath.Join(filepath.Dir(out), "escape")).ToNot(gomega.BeAnExistingFile())

	page, err := os.ReadFile(filepath.Join(out, "posts", "first", "index.html"))
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(string(page)).To(gomega.ContainSubstring("<h2>Section</h2>"))
	g.Expect(string(page)).To(gomega.ContainSubstring(`href="/posts/second/"`))

	md, err := os.ReadFile(filepath.Join(out, "posts", "first", "index.md"))
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(string(md)).To(gomega.ContainSubstring("## Section"))

	home, err := os.ReadFile(filepath.Join(out, "index.html"))
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(string(home)).To(gomega.ContainSubstring(`href="/posts/first/"`))
	g.Expect(string(home)).To(gomega.ContainSubstring(`href="/posts/second/"`))
	g.Expect(string(home)).ToNot(gomega.ContainSubstring("/posts/gone/"))
	g.Expect(string(home)).ToNot(gomega.ContainSubstring("escape"))

	feed, err := os.ReadFile(filepath.Join(out, "feed.xml"))
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(string(feed)).To(gomega.ContainSubstring("https://blog.example.com/posts/first/"))
	g.Expect(string(feed)).ToNot(gomega.ContainSubstring("posts/gone"))
}

func TestBuildSourceError(t *testing.T) {
	g := gomega.NewWithT(t)
	a, src := newTestApp(t)
	src.EXPECT().Posts(gomock.Any(), false).Return(nil, &contentful.ConfigurationError{Field: "SpaceID"})

	_, err := a.Build(context.Background(), t.TempDir())
	var cfgErr *contentful.ConfigurationError
	g.Expect(errors.As(err, &cfgErr)).To(gomega.BeTrue())
}

func TestSafeSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"2025-recap", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../escape", false},
		{"a/b", false},
		{`a\b`, false},
	}
	for _, tt := range tests {
		if got := safeSlug(tt.slug); got != tt.want {
			t.Errorf("safeSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
