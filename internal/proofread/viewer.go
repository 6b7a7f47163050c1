package proofread

import (
	"context"
	"fmt"

	"github.com/lehigh-university-libraries/proofreader/internal/catalog"
	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/pagination"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
	"github.com/lehigh-university-libraries/proofreader/internal/storage"
)

// DefaultImageWidth is the scan display width when the index sets none.
const DefaultImageWidth = 1024

// IndexLookup returns the numbering preferences of an index, nil when the
// index has none.
type IndexLookup interface {
	FindIndex(ctx context.Context, name string) (*catalog.Index, error)
}

// PageView is everything the edit form shows about one page
type PageView struct {
	Title         string          `json:"title" yaml:"title"`
	Index         string          `json:"index" yaml:"index"`
	Ordinal       int             `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	Label         string          `json:"label" yaml:"label"`
	RawLabel      string          `json:"raw_label" yaml:"raw_label"`
	Numeric       bool            `json:"numeric" yaml:"numeric"`
	Empty         bool            `json:"empty" yaml:"empty"`
	Exists        bool            `json:"exists" yaml:"exists"`
	RevisionID    string          `json:"revision_id,omitempty" yaml:"revision_id,omitempty"`
	Header        string          `json:"header,omitempty" yaml:"header,omitempty"`
	Body          string          `json:"body,omitempty" yaml:"body,omitempty"`
	Footer        string          `json:"footer,omitempty" yaml:"footer,omitempty"`
	Quality       quality.State   `json:"quality" yaml:"quality"`
	Category      string          `json:"category" yaml:"category"`
	ImageWidth    int             `json:"image_width" yaml:"image_width"`
	ThumbnailPage int             `json:"thumbnail_page,omitempty" yaml:"thumbnail_page,omitempty"`
	AllowedLevels []quality.Level `json:"allowed_levels" yaml:"allowed_levels"`
}

// PageLabel is one row of an index page listing
type PageLabel struct {
	Ordinal  int           `json:"ordinal" yaml:"ordinal"`
	Label    string        `json:"label" yaml:"label"`
	RawLabel string        `json:"raw_label" yaml:"raw_label"`
	Numeric  bool          `json:"numeric" yaml:"numeric"`
	Empty    bool          `json:"empty" yaml:"empty"`
	Level    quality.Level `json:"level" yaml:"level"`
	Category string        `json:"category" yaml:"category"`
}

// Viewer assembles read-only page and index views
type Viewer struct {
	resolver     *resource.Resolver
	indexes      IndexLookup
	store        storage.PageStore
	machine      *quality.Machine
	categories   quality.Categories
	defaultWidth int
}

// ViewerOption configures a Viewer
type ViewerOption func(*Viewer)

// WithCategories sets the category labels reported for each level.
func WithCategories(c quality.Categories) ViewerOption {
	return func(v *Viewer) { v.categories = c }
}

// WithDefaultWidth replaces DefaultImageWidth.
func WithDefaultWidth(width int) ViewerOption {
	return func(v *Viewer) {
		if width > 0 {
			v.defaultWidth = width
		}
	}
}

func NewViewer(resolver *resource.Resolver, indexes IndexLookup, store storage.PageStore, machine *quality.Machine, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		resolver:     resolver,
		indexes:      indexes,
		store:        store,
		machine:      machine,
		categories:   quality.DefaultCategories(),
		defaultWidth: DefaultImageWidth,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// View describes the page title as seen by user, numbered in l.
func (v *Viewer) View(ctx context.Context, title string, l lang.Language, user quality.User) (*PageView, error) {
	res, err := resolvePage(ctx, v.resolver, title)
	if err != nil {
		return nil, err
	}

	index, err := v.findIndex(ctx, res.Resource.Name)
	if err != nil {
		return nil, err
	}

	ordinal := res.Ordinal
	if ordinal == 0 {
		ordinal = 1
	}
	number := pageList(index).Number(ordinal)

	key := pageTitle(res)
	record, err := v.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %q: %w", key, err)
	}

	view := &PageView{
		Title:      key,
		Index:      res.Resource.Name,
		Ordinal:    res.Ordinal,
		Label:      number.Format(l),
		RawLabel:   number.Raw(l),
		Numeric:    number.IsNumeric(),
		Empty:      number.IsEmpty(),
		Quality:    quality.Initial(),
		ImageWidth: v.imageWidth(res.Resource, index),
	}
	if res.Resource.MultiPage && res.HasOrdinal() {
		view.ThumbnailPage = res.Ordinal
	}
	if record != nil {
		view.Exists = true
		view.RevisionID = record.RevisionID
		view.Header = record.Header
		view.Body = record.Body
		view.Footer = record.Footer
		view.Quality = record.Quality
	}
	view.Category = v.categories.Label(view.Quality.Level)
	view.AllowedLevels = v.machine.AllowedLevels(view.Quality, user)
	return view, nil
}

// Pages lists the label and quality of every page of an index.
func (v *Viewer) Pages(ctx context.Context, indexName string, l lang.Language) ([]PageLabel, error) {
	scan, err := v.resolver.ResolveForIndex(ctx, indexName)
	if err != nil {
		return nil, err
	}
	index, err := v.findIndex(ctx, scan.Name)
	if err != nil {
		return nil, err
	}
	list := pageList(index)

	labels := make([]PageLabel, 0, scan.Pages())
	for ordinal := 1; ordinal <= scan.Pages(); ordinal++ {
		number := list.Number(ordinal)
		state, err := v.pageState(ctx, scan, ordinal)
		if err != nil {
			return nil, err
		}
		labels = append(labels, PageLabel{
			Ordinal:  ordinal,
			Label:    number.Format(l),
			RawLabel: number.Raw(l),
			Numeric:  number.IsNumeric(),
			Empty:    number.IsEmpty(),
			Level:    state.Level,
			Category: v.categories.Label(state.Level),
		})
	}
	return labels, nil
}

func (v *Viewer) pageState(ctx context.Context, scan *resource.ScanResource, ordinal int) (quality.State, error) {
	key := pageTitle(resource.Resolution{Resource: scan, Ordinal: ordinal})
	record, err := v.store.Get(ctx, key)
	if err != nil {
		return quality.State{}, fmt.Errorf("failed to load page %q: %w", key, err)
	}
	if record == nil {
		return quality.Initial(), nil
	}
	return record.Quality, nil
}

func (v *Viewer) findIndex(ctx context.Context, name string) (*catalog.Index, error) {
	if v.indexes == nil {
		return nil, nil
	}
	index, err := v.indexes.FindIndex(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load index %q: %w", name, err)
	}
	return index, nil
}

// imageWidth is the index width, or the default, never wider than the scan.
func (v *Viewer) imageWidth(scan *resource.ScanResource, index *catalog.Index) int {
	width := v.defaultWidth
	if index != nil && index.DisplayWidth > 0 {
		width = index.DisplayWidth
	}
	if scan.Width > 0 && scan.Width < width {
		width = scan.Width
	}
	return width
}

func pageList(index *catalog.Index) *pagination.PageList {
	if index == nil {
		return nil
	}
	return index.PageList
}
