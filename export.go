package cmsblog

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/eringen/cmsblog/contentful"
	"github.com/eringen/cmsblog/richtext"
	"github.com/eringen/cmsblog/views"
)

// Markdown renders a post as a Markdown document: a title heading, a byline,
// and the body converted from its rendered HTML.
func Markdown(p contentful.Post) (string, error) {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(p.Title)
	b.WriteString("\n\n")

	var byline []string
	if p.Author != nil && p.Author.Name != "" {
		byline = append(byline, "By "+p.Author.Name)
	}
	if p.Date != "" {
		byline = append(byline, views.FormatDate(p.Date))
	}
	if len(byline) > 0 {
		b.WriteString("_")
		b.WriteString(strings.Join(byline, ", "))
		b.WriteString("_\n\n")
	}

	if p.Content != nil {
		body, err := htmltomarkdown.ConvertString(richtext.Render(*p.Content).HTML())
		if err != nil {
			return "", fmt.Errorf("cmsblog: convert %q to markdown: %w", p.Slug, err)
		}
		if body = strings.TrimSpace(body); body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
