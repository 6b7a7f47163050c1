package catalog

import (
	"strings"

	"github.com/lehigh-university-libraries/proofreader/internal/pagination"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

// IndexRecord is one line of a scan catalog: the scan file and the
// settings of the index built on it.
type IndexRecord struct {
	Name      string `json:"name" parquet:"name"`             // scan file name, also the index name
	PageCount int    `json:"page_count" parquet:"page_count"` // pages in the scan
	MediaType string `json:"media_type" parquet:"media_type"` // MIME type of the scan
	Width     int    `json:"width" parquet:"width"`           // scan width in pixels

	// Index settings
	DisplayWidth int               `json:"display_width,omitempty" parquet:"display_width"` // overrides the default scan display width
	PageList     map[string]string `json:"pagelist,omitempty" parquet:"pagelist"`           // pagelist parameters, e.g. {"1to4": "roman"}
}

// multiPageTypes are the scan formats that hold several pages.
var multiPageTypes = map[string]bool{
	"image/vnd.djvu":  true,
	"image/x.djvu":    true,
	"application/pdf": true,
	"image/tiff":      true,
}

// IsMultiPage reports whether the scan holds several pages.
func (r *IndexRecord) IsMultiPage() bool {
	return multiPageTypes[strings.ToLower(r.MediaType)] || r.PageCount > 1
}

// Resource returns the scan described by the record.
func (r *IndexRecord) Resource() *resource.ScanResource {
	pages := r.PageCount
	if pages < 1 {
		pages = 1
	}
	return &resource.ScanResource{
		Name:      r.Name,
		Exists:    true,
		PageCount: pages,
		MultiPage: r.IsMultiPage(),
		MediaType: r.MediaType,
		Width:     r.Width,
	}
}

// Index is an index with its parsed numbering preferences.
type Index struct {
	Resource     *resource.ScanResource
	PageList     *pagination.PageList
	DisplayWidth int
}
