package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/cmsblog/contentful"
)

// DefaultQuality is the image quality requested when none is given.
const DefaultQuality = 75

// StylesheetPath is where the layout expects the site stylesheet.
const StylesheetPath = "/public/styles.css"

// DisableDraftPath is the endpoint the draft banner links to.
const DisableDraftPath = "/api/disable-draft"

// Widths offered to the browser for cover images.
var coverWidths = []int{640, 1080, 1920}

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostPath is the site-relative link to a post page.
func PostPath(slug string) string {
	return "/posts/" + url.PathEscape(slug) + "/"
}

// ImageURL asks the Contentful image API for a resized rendition of src.
// A quality of zero or less means DefaultQuality. Existing query parameters
// on src are kept.
func ImageURL(src string, width, quality int) string {
	if src == "" {
		return ""
	}
	if quality <= 0 {
		quality = DefaultQuality
	}
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	q := u.Query()
	q.Set("w", strconv.Itoa(width))
	q.Set("q", strconv.Itoa(quality))
	u.RawQuery = q.Encode()
	return u.String()
}

// FormatDate renders an ISO 8601 date as "January 2, 2006". Input that does
// not parse is returned unchanged.
func FormatDate(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return date
	}
	return t.Format("January 2, 2006")
}

// ParseDate accepts the full ISO 8601 timestamps Contentful returns as well
// as bare dates.
func ParseDate(date string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func coverSrcset(src string) string {
	parts := make([]string, len(coverWidths))
	for i, w := range coverWidths {
		parts[i] = ImageURL(src, w, 0) + " " + strconv.Itoa(w) + "w"
	}
	return strings.Join(parts, ", ")
}

func pageTitle(site SiteConfig, meta PageMeta) string {
	if meta.Title != "" && meta.Title != site.Name {
		return meta.Title + " | " + site.Name
	}
	return site.Name
}

func pageDescription(site SiteConfig, meta PageMeta) string {
	if meta.Description != "" {
		return meta.Description
	}
	return site.Description
}

func ogType(meta PageMeta) string {
	if meta.OGType == "" {
		return "website"
	}
	return meta.OGType
}

func homeMeta(site SiteConfig) PageMeta {
	return PageMeta{
		Title:       site.Name,
		Description: site.Description,
		URL:         BuildURL(site.URL),
		OGType:      "website",
	}
}

func postMeta(site SiteConfig, p contentful.Post) PageMeta {
	return PageMeta{
		Title:       p.Title,
		Description: p.Excerpt,
		URL:         BuildURL(site.URL, "posts", p.Slug),
		OGType:      "article",
		Image:       p.CoverImageURL,
	}
}

// jsonLDScript wraps a JSON-LD block. json.Marshal escapes '<', so the
// payload cannot close the script element early.
func jsonLDScript(jsonLD string) string {
	return `<script type="application/ld+json">` + jsonLD + `</script>`
}

// WebsiteJSONLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJSONLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJSONLD(cfg SiteConfig, post contentful.Post) string {
	postURL := BuildURL(cfg.URL, "posts", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": post.Date,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Excerpt != "" {
		data["description"] = post.Excerpt
	}
	if post.CoverImageURL != "" {
		data["image"] = post.CoverImageURL
	}
	if post.Author != nil && post.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  post.Author.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
