// Package richtext decodes Contentful rich-text documents and renders them
// into an HTML view tree.
package richtext

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Node type names as they appear in the Contentful JSON payload.
const (
	TypeDocument      = "document"
	TypeParagraph     = "paragraph"
	TypeUnorderedList = "unordered-list"
	TypeOrderedList   = "ordered-list"
	TypeListItem      = "list-item"
	TypeEmbeddedAsset = "embedded-asset-block"
	TypeText          = "text"

	headingPrefix = "heading-"
)

// Mark is an inline text decoration.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
	MarkCode      Mark = "code"
)

// Node is one node of a rich-text tree. The set of implementations is closed;
// node types this package does not know decode to *Unknown.
type Node interface {
	Type() string
	isNode()
}

// Root is the top-level "document" node.
type Root struct {
	Content []Node
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Content []Node
}

// Heading is a section heading. Level is taken from the node type
// ("heading-3" has Level 3) and is not validated here.
type Heading struct {
	Level   int
	Content []Node
}

// List is an ordered or unordered list whose children are list items.
type List struct {
	Ordered bool
	Content []Node
}

// ListItem is a single entry of a List.
type ListItem struct {
	Content []Node
}

// EmbeddedAsset references an asset by id; it has no children.
type EmbeddedAsset struct {
	TargetID string
}

// Text is a leaf carrying a literal value and its marks.
type Text struct {
	Value string
	Marks []Mark
}

// Unknown holds any node type not listed above. Its children are kept so
// callers can inspect them, but the renderer emits nothing for it.
type Unknown struct {
	NodeType string
	Content  []Node
}

func (*Root) Type() string          { return TypeDocument }
func (*Paragraph) Type() string     { return TypeParagraph }
func (h *Heading) Type() string     { return headingPrefix + strconv.Itoa(h.Level) }
func (*ListItem) Type() string      { return TypeListItem }
func (*EmbeddedAsset) Type() string { return TypeEmbeddedAsset }
func (*Text) Type() string          { return TypeText }
func (u *Unknown) Type() string     { return u.NodeType }

func (l *List) Type() string {
	if l.Ordered {
		return TypeOrderedList
	}
	return TypeUnorderedList
}

func (*Root) isNode()          {}
func (*Paragraph) isNode()     {}
func (*Heading) isNode()       {}
func (*List) isNode()          {}
func (*ListItem) isNode()      {}
func (*EmbeddedAsset) isNode() {}
func (*Text) isNode()          {}
func (*Unknown) isNode()       {}

// HasMark reports whether t carries m.
func (t *Text) HasMark(m Mark) bool {
	for _, have := range t.Marks {
		if have == m {
			return true
		}
	}
	return false
}

type rawNode struct {
	NodeType string `json:"nodeType"`
	Value    string `json:"value"`
	Marks    []struct {
		Type string `json:"type"`
	} `json:"marks"`
	Data struct {
		Target *struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"target"`
	} `json:"data"`
	Content []rawNode `json:"content"`
}

// Parse decodes a Contentful rich-text JSON value into a node tree.
func Parse(data []byte) (Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("richtext: decode node: %w", err)
	}
	return raw.node(), nil
}

func (r rawNode) node() Node {
	switch r.NodeType {
	case TypeDocument:
		return &Root{Content: r.children()}
	case TypeParagraph:
		return &Paragraph{Content: r.children()}
	case TypeUnorderedList:
		return &List{Content: r.children()}
	case TypeOrderedList:
		return &List{Ordered: true, Content: r.children()}
	case TypeListItem:
		return &ListItem{Content: r.children()}
	case TypeEmbeddedAsset:
		n := &EmbeddedAsset{}
		if r.Data.Target != nil {
			n.TargetID = r.Data.Target.Sys.ID
		}
		return n
	case TypeText:
		t := &Text{Value: r.Value}
		for _, m := range r.Marks {
			t.Marks = append(t.Marks, Mark(m.Type))
		}
		return t
	}
	if level, ok := strings.CutPrefix(r.NodeType, headingPrefix); ok {
		if n, err := strconv.Atoi(level); err == nil {
			return &Heading{Level: n, Content: r.children()}
		}
	}
	return &Unknown{NodeType: r.NodeType, Content: r.children()}
}

func (r rawNode) children() []Node {
	if len(r.Content) == 0 {
		return nil
	}
	out := make([]Node, 0, len(r.Content))
	for _, c := range r.Content {
		out = append(out, c.node())
	}
	return out
}
