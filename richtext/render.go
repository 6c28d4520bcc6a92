package richtext

import (
	"context"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Attr is an HTML attribute. Values are escaped on output.
type Attr struct {
	Key string
	Val string
}

// Element is a node of the rendered view tree. An element with an empty Tag
// is a fragment: its Text is written as-is (escaped) followed by its children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

var voidTags = map[string]bool{"img": true, "br": true, "hr": true}

// Marks wrap text from the inside out in this order, so <code> is always
// innermost and <u> outermost regardless of the order marks were sent in.
var markOrder = []struct {
	mark Mark
	tag  string
}{
	{MarkCode, "code"},
	{MarkBold, "strong"},
	{MarkItalic, "em"},
	{MarkUnderline, "u"},
}

type renderer struct {
	assets map[string]Asset
}

// Render converts doc into a view tree. It does no I/O and never fails:
// unknown node types and embedded assets that cannot be resolved produce no
// output, and the rest of the document renders normally.
func Render(doc Document) *Element {
	r := renderer{assets: make(map[string]Asset, len(doc.Assets))}
	for _, a := range doc.Assets {
		r.assets[a.ID] = a
	}

	out := &Element{}
	switch n := doc.JSON.(type) {
	case nil:
	case *Root:
		out.Children = r.nodes(n.Content)
	default:
		if el := r.node(n); el != nil {
			out.Children = []*Element{el}
		}
	}
	return out
}

func (r renderer) nodes(ns []Node) []*Element {
	var out []*Element
	for _, n := range ns {
		if el := r.node(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (r renderer) node(n Node) *Element {
	switch n := n.(type) {
	case *Root:
		return &Element{Children: r.nodes(n.Content)}
	case *Paragraph:
		return &Element{Tag: "p", Children: r.nodes(n.Content)}
	case *Heading:
		level := min(max(n.Level, 1), 6)
		return &Element{Tag: "h" + strconv.Itoa(level), Children: r.nodes(n.Content)}
	case *List:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		return &Element{Tag: tag, Children: r.nodes(n.Content)}
	case *ListItem:
		// A leading paragraph is unwrapped; later ones keep their <p> so
		// sibling blocks stay separated.
		li := &Element{Tag: "li"}
		for i, c := range n.Content {
			if p, ok := c.(*Paragraph); ok && i == 0 {
				li.Children = append(li.Children, r.nodes(p.Content)...)
				continue
			}
			if el := r.node(c); el != nil {
				li.Children = append(li.Children, el)
			}
		}
		return li
	case *EmbeddedAsset:
		return r.asset(n.TargetID)
	case *Text:
		return text(n)
	default:
		return nil
	}
}

func (r renderer) asset(id string) *Element {
	a, ok := r.assets[id]
	if !ok {
		return nil
	}
	src := assetURL(a.URL)
	if src == "" {
		return nil
	}
	return &Element{Tag: "img", Attrs: []Attr{
		{Key: "src", Val: src},
		{Key: "alt", Val: a.Description},
		{Key: "loading", Val: "lazy"},
		{Key: "decoding", Val: "async"},
	}}
}

func text(t *Text) *Element {
	el := &Element{Text: t.Value}
	for _, m := range markOrder {
		if t.HasMark(m.mark) {
			el = &Element{Tag: m.tag, Children: []*Element{el}}
		}
	}
	return el
}

// assetURL returns a usable image URL or "" if raw cannot be used.
// Contentful serves asset URLs protocol-relative ("//images.ctfassets.net/...").
func assetURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "//") {
		return "https:" + val
	}
	if strings.HasPrefix(val, "/") {
		return val
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return val
	default:
		return ""
	}
}

// TextContent returns the concatenated text of e and its descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.appendText(&b)
	return b.String()
}

func (e *Element) appendText(b *strings.Builder) {
	if e == nil {
		return
	}
	b.WriteString(e.Text)
	for _, c := range e.Children {
		c.appendText(b)
	}
}

// HTML serialises e.
func (e *Element) HTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

// WriteHTML writes the HTML serialisation of e to w.
func (e *Element) WriteHTML(w io.Writer) error {
	_, err := io.WriteString(w, e.HTML())
	return err
}

func (e *Element) writeHTML(b *strings.Builder) {
	if e == nil {
		return
	}
	if e.Tag != "" {
		b.WriteString("<" + e.Tag)
		for _, a := range e.Attrs {
			b.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
		}
		if voidTags[e.Tag] {
			b.WriteString("/>")
			return
		}
		b.WriteString(">")
	}
	b.WriteString(html.EscapeString(e.Text))
	for _, c := range e.Children {
		c.writeHTML(b)
	}
	if e.Tag != "" {
		b.WriteString("</" + e.Tag + ">")
	}
}

// Component returns a templ.Component that renders doc.
func Component(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(doc).WriteHTML(w)
	})
}
