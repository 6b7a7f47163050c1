package resource

import (
	"context"
	"errors"
)

var (
	// ErrResourceNotFound is returned when no scan exists under the requested name.
	ErrResourceNotFound = errors.New("scan resource not found")
	// ErrPageNumberNotFound is returned when a page identifier carries no valid 1-based ordinal.
	ErrPageNumberNotFound = errors.New("page number not found")
)

// ScanResource is the scanned work backing an index: a multi-page djvu or
// pdf, or a single image.
type ScanResource struct {
	Name      string `json:"name" yaml:"name"`
	Exists    bool   `json:"exists" yaml:"exists"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	MultiPage bool   `json:"multi_page" yaml:"multi_page"`
	MediaType string `json:"media_type,omitempty" yaml:"media_type,omitempty"`
	Width     int    `json:"width,omitempty" yaml:"width,omitempty"` // scan width in pixels
}

// Pages returns the number of pages, one for single images.
func (s *ScanResource) Pages() int {
	if !s.MultiPage {
		return 1
	}
	return s.PageCount
}

// Repository looks scans up by name. A missing scan is (nil, nil).
type Repository interface {
	FindResourceByName(ctx context.Context, name string) (*ScanResource, error)
}

// Resolution is a page identifier resolved against its scan.
type Resolution struct {
	Resource *ScanResource `json:"resource"`
	Ordinal  int           `json:"ordinal,omitempty"` // 0 when the identifier names no page
}

// HasOrdinal reports whether the identifier named an explicit page.
func (r Resolution) HasOrdinal() bool {
	return r.Ordinal > 0
}

// NeedsExplicitPage reports a bare scan name on a multi-page scan: the
// scan is known but not which of its pages is meant.
func (r Resolution) NeedsExplicitPage() bool {
	return !r.HasOrdinal() && r.Resource != nil && r.Resource.MultiPage
}

// InRange reports whether the ordinal falls inside the scan's page count.
func (r Resolution) InRange() bool {
	if r.Resource == nil {
		return false
	}
	if !r.HasOrdinal() {
		return !r.Resource.MultiPage
	}
	return r.Ordinal <= r.Resource.Pages()
}
