package domain

import (
	"fmt"
	"strings"
)

// Image is a single search hit as returned by the image API.
// The client passes it through to the renderer without validation.
type Image struct {
	ID            int    `json:"id" yaml:"id"`
	PageURL       string `json:"page_url" yaml:"page_url"`
	Type          string `json:"type" yaml:"type"`                   // "photo", "illustration", "vector"
	Tags          string `json:"tags" yaml:"tags"`                   // Comma-separated, as delivered by the API
	PreviewURL    string `json:"preview_url" yaml:"preview_url"`     // ~150px thumbnail
	PreviewWidth  int    `json:"preview_width" yaml:"preview_width"`
	PreviewHeight int    `json:"preview_height" yaml:"preview_height"`
	WebformatURL  string `json:"webformat_url" yaml:"webformat_url"` // ~640px display image
	LargeImageURL string `json:"large_image_url" yaml:"large_image_url"`
	ImageWidth    int    `json:"image_width" yaml:"image_width"`
	ImageHeight   int    `json:"image_height" yaml:"image_height"`
	ImageSize     int64  `json:"image_size" yaml:"image_size"`
	Views         int    `json:"views" yaml:"views"`
	Downloads     int    `json:"downloads" yaml:"downloads"`
	Likes         int    `json:"likes" yaml:"likes"`
	Comments      int    `json:"comments" yaml:"comments"`
	UserID        int    `json:"user_id" yaml:"user_id"`
	User          string `json:"user" yaml:"user"`
	UserImageURL  string `json:"user_image_url" yaml:"user_image_url"`
}

// TagList splits the comma-separated tag string into trimmed tags
func (i Image) TagList() []string {
	if i.Tags == "" {
		return nil
	}
	parts := strings.Split(i.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// DisplayURL returns the best URL for showing the image in a card
func (i Image) DisplayURL() string {
	switch {
	case i.WebformatURL != "":
		return i.WebformatURL
	case i.PreviewURL != "":
		return i.PreviewURL
	default:
		return i.LargeImageURL
	}
}

// Resolution returns "WxH" for the full-size image, or "" when unknown
func (i Image) Resolution() string {
	if i.ImageWidth <= 0 || i.ImageHeight <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", i.ImageWidth, i.ImageHeight)
}

// FilterText is the text the local filter matches against (tags and author)
func (i Image) FilterText() string {
	return i.Tags + " " + i.User
}

// FormatCount renders a counter compactly (1234 -> "1.2k", 2500000 -> "2.5M")
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
