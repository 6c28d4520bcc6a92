package cmsblog

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, cfg SiteConfig, posts []contentful.Post) error {
	base := cfg.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: views.BuildURL(base, "posts", p.Slug)}
		if t, ok := views.ParseDate(p.Date); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func robotsTxt(cfg SiteConfig) string {
	return "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + strings.TrimSuffix(views.BuildURL(cfg.URL), "/") + "/sitemap.xml\n"
}
