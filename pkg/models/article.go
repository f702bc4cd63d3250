package models

import "time"

// Tab is a content category backed by one directory under the content root.
type Tab struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Article represents one Markdown file inside a tab.
type Article struct {
	ID         string                 `json:"id"`
	Tab        string                 `json:"tab"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"` // Rendered HTML
	Metadata   map[string]interface{} `json:"metadata"`
	ModifiedAt time.Time              `json:"modified_at"`
}

// MediaFile is a non-Markdown asset stored next to a tab's articles.
type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"` // Relative to the content root
	Size int64  `json:"size"`
	URL  string `json:"url"`
}
