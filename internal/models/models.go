package models

import (
	"time"
)

// Content types a snippet body can be stored as.
const (
	ContentTypeText = "text"
	ContentTypeHTML = "html"
)

// Snippet is a captured "ah-ha" moment: a short piece of text plus where it
// came from and the tags generated for it.
type Snippet struct {
	ID                string    `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Content           string    `json:"content" db:"content"`
	PermalinkToOrigin *string   `json:"permalink_to_origin" db:"permalink_to_origin"`
	Notes             *string   `json:"notes" db:"notes"`
	ContentType       *string   `json:"content_type" db:"content_type"` // "html" or "text"
	GeneratedTags     []string  `json:"generated_tags" db:"generated_tags"`
	Timestamp         time.Time `json:"timestamp" db:"timestamp"`
}

// IsHTML reports whether the snippet body is HTML markup.
func (s *Snippet) IsHTML() bool {
	return s.ContentType != nil && *s.ContentType == ContentTypeHTML
}

// ChatMessage is one entry of the demo chat log served to the frontend.
type ChatMessage struct {
	ID   int    `json:"id"`
	User string `json:"user"`
	Text string `json:"text"`
}
