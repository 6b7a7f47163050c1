package models

import (
	"time"

	"github.com/lehigh-university-libraries/proofreader/internal/quality"
)

// PageRecord is the stored state of one transcribed page. Content and
// quality are always written together.
type PageRecord struct {
	Title      string        `json:"title"`
	Header     string        `json:"header"`
	Body       string        `json:"body"`
	Footer     string        `json:"footer"`
	Quality    quality.State `json:"quality"`
	RevisionID string        `json:"revision_id"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Edit is a submitted change to a page
type Edit struct {
	Title        string        `json:"title"`
	Header       string        `json:"header"`
	Body         string        `json:"body"`
	Footer       string        `json:"footer"`
	Level        quality.Level `json:"level"`
	User         quality.User  `json:"-"`                       // set by the server from the authenticated request
	BaseRevision string        `json:"base_revision,omitempty"` // revision the edit was made against, "" for new pages
}
