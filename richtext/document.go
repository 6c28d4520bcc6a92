package richtext

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Asset is a media file referenced from an embedded-asset node.
type Asset struct {
	ID          string
	URL         string
	Description string
}

// Document is a rich-text field value: the node tree plus the assets the
// tree links to. It decodes from Contentful's
// {"json": ..., "links": {"assets": {"block": [...]}}} shape.
type Document struct {
	JSON   Node
	Assets []Asset
}

type wireAsset struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// UnmarshalJSON implements json.Unmarshaler. A malformed document is logged
// and decodes as empty, so one bad field never fails the surrounding value.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire struct {
		JSON  json.RawMessage `json:"json"`
		Links struct {
			Assets struct {
				Block []*wireAsset `json:"block"`
			} `json:"assets"`
		} `json:"links"`
	}
	*d = Document{}
	if err := json.Unmarshal(data, &wire); err != nil {
		slog.Warn("skipping malformed rich text document", slog.Any("Error", err))
		return nil
	}

	if len(wire.JSON) > 0 && !bytes.Equal(wire.JSON, []byte("null")) {
		root, err := Parse(wire.JSON)
		if err != nil {
			slog.Warn("skipping malformed rich text", slog.Any("Error", err))
		} else {
			d.JSON = root
		}
	}
	// Unpublished assets come back as null entries.
	for _, a := range wire.Links.Assets.Block {
		if a == nil {
			continue
		}
		d.Assets = append(d.Assets, Asset{
			ID:          a.Sys.ID,
			URL:         a.URL,
			Description: a.Description,
		})
	}
	return nil
}
