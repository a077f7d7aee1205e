package prompt

import (
	"encoding/base64"

	"docsift/internal/domain"
)

// ContentBlock is one element of a multimodal user message: an encoded
// page image or the trailing prompt text.
type ContentBlock struct {
	Type   string       `json:"type"`
	Source *ImageSource `json:"source,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// ImageSource carries one base64-encoded page image.
type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

const pageMediaType = "image/jpeg"

// PackageContent converts an ordered sequence of rasterized page images
// into encoded image blocks bounded by maxPages, with the prompt text
// appended as the final block. Page order is a hard contract: it
// materially changes model interpretation of multi-page documents. An
// empty page set after truncation is never sent to the model.
func PackageContent(text string, pages [][]byte, maxPages int) ([]ContentBlock, error) {
	if maxPages > 0 && len(pages) > maxPages {
		pages = pages[:maxPages]
	}
	if len(pages) == 0 {
		return nil, domain.ErrNoPages
	}

	blocks := make([]ContentBlock, 0, len(pages)+1)
	for _, page := range pages {
		blocks = append(blocks, ContentBlock{
			Type: "image",
			Source: &ImageSource{
				Type:      "base64",
				MediaType: pageMediaType,
				Data:      base64.StdEncoding.EncodeToString(page),
			},
		})
	}
	blocks = append(blocks, ContentBlock{Type: "text", Text: text})
	return blocks, nil
}
