package views

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/richtext"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byAlt(t *testing.T, doc *html.Node, alt string) *html.Node {
	t.Helper()
	for _, img := range findAll(doc, "img") {
		if attr(img, "alt") == alt {
			return img
		}
	}
	t.Fatalf("no img with alt %q", alt)
	return nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestAvatar(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"John Doe", "https://images.ctfassets.net/test/avatar.jpg"},
		{"Jane Smith", "https://images.ctfassets.net/test/author2.jpg"},
		{"José María", "https://images.ctfassets.net/test/author3.jpg"},
		{`Tom "T" <Tester>`, "https://images.ctfassets.net/test/author4.jpg"},
	}
	for _, tt := range tests {
		doc := parse(t, render(t, Avatar(tt.name, tt.url)))
		if got := textOf(doc); got != tt.name {
			t.Errorf("Avatar(%q) text = %q, want %q", tt.name, got, tt.name)
		}
		img := byAlt(t, doc, tt.name)
		if got := attr(img, "src"); got != tt.url {
			t.Errorf("Avatar(%q) src = %q, want %q", tt.name, got, tt.url)
		}
	}
}

func TestAvatarWithoutPicture(t *testing.T) {
	doc := parse(t, render(t, Avatar("No Picture", "")))
	if imgs := findAll(doc, "img"); len(imgs) != 0 {
		t.Errorf("Avatar without picture rendered %d images", len(imgs))
	}
	if got := textOf(doc); got != "No Picture" {
		t.Errorf("text = %q, want %q", got, "No Picture")
	}
}

func TestCoverImage(t *testing.T) {
	const url = "https://images.ctfassets.net/test/cover.jpg"
	doc := parse(t, render(t, CoverImage("Test Post Title", url, "")))
	img := byAlt(t, doc, "Cover Image for Test Post Title")
	if got := attr(img, "src"); got != url {
		t.Errorf("src = %q, want %q", got, url)
	}
	if links := findAll(doc, "a"); len(links) != 0 {
		t.Errorf("CoverImage without slug rendered %d links", len(links))
	}
}

func TestCoverImageLinksToPost(t *testing.T) {
	doc := parse(t, render(t, CoverImage("Linked Post", "https://images.ctfassets.net/test/linked.jpg", "linked-post")))
	links := findAll(doc, "a")
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if got := attr(links[0], "href"); got != "/posts/linked-post/" {
		t.Errorf("href = %q, want %q", got, "/posts/linked-post/")
	}
	byAlt(t, links[0], "Cover Image for Linked Post")
}

func TestCoverImageSrcset(t *testing.T) {
	doc := parse(t, render(t, CoverImage("Sized", "//images.ctfassets.net/test/sized.jpg", "")))
	got := attr(byAlt(t, doc, "Cover Image for Sized"), "srcset")
	want := "https://images.ctfassets.net/test/sized.jpg?q=75&w=640 640w, " +
		"https://images.ctfassets.net/test/sized.jpg?q=75&w=1080 1080w, " +
		"https://images.ctfassets.net/test/sized.jpg?q=75&w=1920 1920w"
	if got != want {
		t.Errorf("srcset = %q, want %q", got, want)
	}
}

func TestCoverImageLongTitle(t *testing.T) {
	long := "This is a very long title that should still render correctly in the cover image component"
	doc := parse(t, render(t, CoverImage(long, "https://images.ctfassets.net/test/long-title.jpg", "")))
	byAlt(t, doc, "Cover Image for "+long)
}

func TestCoverImageWithoutURL(t *testing.T) {
	if got := render(t, CoverImage("Title", "", "slug")); got != "" {
		t.Errorf("CoverImage without url = %q, want empty", got)
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		src     string
		width   int
		quality int
		want    string
	}{
		{"https://images.ctfassets.net/a.jpg", 640, 0, "https://images.ctfassets.net/a.jpg?q=75&w=640"},
		{"https://images.ctfassets.net/a.jpg", 1080, 90, "https://images.ctfassets.net/a.jpg?q=90&w=1080"},
		{"//images.ctfassets.net/a.jpg", 96, -1, "https://images.ctfassets.net/a.jpg?q=75&w=96"},
		{"https://images.ctfassets.net/a.jpg?fm=webp", 640, 0, "https://images.ctfassets.net/a.jpg?fm=webp&q=75&w=640"},
		{"", 640, 0, ""},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.src, tt.width, tt.quality); got != tt.want {
			t.Errorf("ImageURL(%q, %d, %d) = %q, want %q", tt.src, tt.width, tt.quality, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-10-21T00:00:00.000Z", "October 21, 2025"},
		{"2024-01-05", "January 5, 2024"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://blog.example.com", nil, "https://blog.example.com"},
		{"https://blog.example.com/", nil, "https://blog.example.com/"},
		{"https://blog.example.com", []string{"posts", "hello"}, "https://blog.example.com/posts/hello/"},
		{"https://blog.example.com/sub/", []string{"posts", "hello"}, "https://blog.example.com/sub/posts/hello/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if d, ok := ParseDate("2025-10-21T08:30:00.000Z"); !ok || d.Hour() != 8 {
		t.Errorf("ParseDate(timestamp) = %v, %v", d, ok)
	}
	if d, ok := ParseDate("2024-01-05"); !ok || d.Day() != 5 {
		t.Errorf("ParseDate(date) = %v, %v", d, ok)
	}
	if _, ok := ParseDate("yesterday"); ok {
		t.Error("ParseDate(yesterday) should fail")
	}
}

func TestDateLabel(t *testing.T) {
	got := render(t, DateLabel("2024-01-05"))
	want := `<time datetime="2024-01-05">January 5, 2024</time>`
	if got != want {
		t.Errorf("DateLabel = %q, want %q", got, want)
	}
}

func TestPostPath(t *testing.T) {
	tests := []struct {
		slug, want string
	}{
		{"hello-world", "/posts/hello-world/"},
		{"a b", "/posts/a%20b/"},
		{"a/b", "/posts/a%2Fb/"},
	}
	for _, tt := range tests {
		if got := PostPath(tt.slug); got != tt.want {
			t.Errorf("PostPath(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestMoreStoriesEmpty(t *testing.T) {
	if got := render(t, MoreStories(nil)); got != "" {
		t.Errorf("MoreStories(nil) = %q, want empty", got)
	}
}

func samplePosts() []contentful.Post {
	return []contentful.Post{
		{Slug: "newest", Title: "Newest", Date: "2025-03-01", Excerpt: "Fresh", Author: &contentful.Author{Name: "John Doe"}},
		{Slug: "older", Title: "Older", Date: "2025-02-01"},
		{Slug: "oldest", Title: "Oldest", Date: "2025-01-01"},
	}
}

func TestHome(t *testing.T) {
	site := SiteConfig{Name: "My Blog", URL: "https://blog.example.com", Description: "Notes"}
	out := render(t, Home(HomePage{Site: site, Posts: samplePosts()}))
	doc := parse(t, out)

	var hrefs []string
	for _, h3 := range findAll(doc, "h3") {
		for _, a := range findAll(h3, "a") {
			hrefs = append(hrefs, attr(a, "href"))
		}
	}
	want := []string{"/posts/newest/", "/posts/older/", "/posts/oldest/"}
	if strings.Join(hrefs, ",") != strings.Join(want, ",") {
		t.Errorf("post links = %v, want %v", hrefs, want)
	}
	if !strings.Contains(out, "More Stories") {
		t.Error("home page is missing More Stories")
	}
	if strings.Contains(out, DisableDraftPath) {
		t.Error("published home page shows the draft banner")
	}
	if titles := findAll(doc, "title"); len(titles) != 1 || textOf(titles[0]) != "My Blog" {
		t.Errorf("unexpected <title> elements: %d", len(titles))
	}
}

func TestHomeEmpty(t *testing.T) {
	out := render(t, Home(HomePage{Site: SiteConfig{Name: "Blog"}}))
	if !strings.Contains(out, "No posts yet.") {
		t.Error("empty home page has no placeholder")
	}
	if strings.Contains(out, "More Stories") {
		t.Error("empty home page lists more stories")
	}
}

func TestHomeDraftBanner(t *testing.T) {
	out := render(t, Home(HomePage{Site: SiteConfig{Name: "Blog"}, Posts: samplePosts(), Draft: true}))
	doc := parse(t, out)
	found := false
	for _, a := range findAll(doc, "a") {
		if attr(a, "href") == DisableDraftPath {
			found = true
		}
	}
	if !found {
		t.Error("draft page has no link to disable draft mode")
	}
}

func TestPostPage(t *testing.T) {
	var body richtext.Document
	raw := `{"json":{"nodeType":"document","content":[{"nodeType":"paragraph","content":[{"nodeType":"text","value":"Hello body","marks":[]}]}]}}`
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	post := contentful.Post{
		Slug:          "hello",
		Title:         "Hello <World>",
		Date:          "2025-10-21",
		Excerpt:       "An excerpt",
		CoverImageURL: "https://images.ctfassets.net/cover.jpg",
		Author:        &contentful.Author{Name: "Jane", PictureURL: "https://images.ctfassets.net/jane.jpg"},
		Content:       &body,
	}
	related := samplePosts()[1:]
	site := SiteConfig{Name: "Blog", URL: "https://blog.example.com"}
	out := render(t, Post(PostPage{Site: site, Post: post, Related: related}))
	doc := parse(t, out)

	h1 := findAll(doc, "h1")
	if len(h1) != 1 || textOf(h1[0]) != "Hello <World>" {
		t.Fatalf("h1 = %v", h1)
	}
	if !strings.Contains(out, "<p>Hello body</p>") {
		t.Error("post body not rendered")
	}
	byAlt(t, doc, "Cover Image for Hello <World>")
	if !strings.Contains(out, `href="https://blog.example.com/posts/hello/"`) {
		t.Error("canonical link missing")
	}
	if !strings.Contains(out, "/posts/older/") || !strings.Contains(out, "/posts/oldest/") {
		t.Error("related posts missing")
	}
	for _, s := range findAll(doc, "script") {
		var ld map[string]any
		if err := json.Unmarshal([]byte(textOf(s)), &ld); err != nil {
			t.Fatalf("invalid JSON-LD: %v", err)
		}
		if ld["@type"] != "BlogPosting" || ld["headline"] != "Hello <World>" {
			t.Errorf("JSON-LD = %v", ld)
		}
	}
}

func TestPostPageWithoutContent(t *testing.T) {
	out := render(t, Post(PostPage{Site: SiteConfig{Name: "Blog"}, Post: contentful.Post{Slug: "bare", Title: "Bare"}}))
	if !strings.Contains(out, `<div class="prose"></div>`) {
		t.Error("post without content should render an empty body")
	}
}

func TestPageTitle(t *testing.T) {
	site := SiteConfig{Name: "Blog"}
	tests := []struct {
		meta PageMeta
		want string
	}{
		{PageMeta{}, "Blog"},
		{PageMeta{Title: "Blog"}, "Blog"},
		{PageMeta{Title: "Hello"}, "Hello | Blog"},
	}
	for _, tt := range tests {
		if got := pageTitle(site, tt.meta); got != tt.want {
			t.Errorf("pageTitle(%+v) = %q, want %q", tt.meta, got, tt.want)
		}
	}
}

func TestPostPageScriptInTitle(t *testing.T) {
	post := contentful.Post{Slug: "x", Title: "</script><script>alert(1)</script>"}
	out := render(t, Post(PostPage{Site: SiteConfig{Name: "Blog"}, Post: post}))
	doc := parse(t, out)
	scripts := findAll(doc, "script")
	if len(scripts) != 1 {
		t.Fatalf("got %d script elements, want 1", len(scripts))
	}
	if attr(scripts[0], "type") != "application/ld+json" {
		t.Errorf("script type = %q", attr(scripts[0], "type"))
	}
}

func TestNotFoundAndServerError(t *testing.T) {
	site := SiteConfig{Name: "Blog"}
	if out := render(t, NotFound(site)); !strings.Contains(out, "Not Found | Blog") {
		t.Errorf("NotFound title missing: %q", out)
	}
	if out := render(t, ServerError(site)); !strings.Contains(out, "Something went wrong") {
		t.Errorf("ServerError message missing: %q", out)
	}
}

func TestWebsiteJSONLD(t *testing.T) {
	var ld map[string]any
	if err := json.Unmarshal([]byte(WebsiteJSONLD(SiteConfig{Name: "Blog", URL: "https://example.com"})), &ld); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ld["url"] != "https://example.com" || ld["name"] != "Blog" {
		t.Errorf("WebsiteJSONLD = %v", ld)
	}
	if _, ok := ld["description"]; ok {
		t.Error("empty description should be omitted")
	}
}
