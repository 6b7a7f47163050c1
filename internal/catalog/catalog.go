package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/lehigh-university-libraries/proofreader/internal/pagination"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

// Catalog is an in-memory scan repository built from catalog records.
// It is read-only once built.
type Catalog struct {
	records   map[string]IndexRecord
	pagelists map[string]*pagination.PageList
}

// New indexes records by name. Duplicate names and invalid pagelists are errors.
func New(records []IndexRecord) (*Catalog, error) {
	c := &Catalog{
		records:   make(map[string]IndexRecord, len(records)),
		pagelists: make(map[string]*pagination.PageList),
	}
	for _, r := range records {
		if _, exists := c.records[r.Name]; exists {
			return nil, fmt.Errorf("duplicate catalog record: %s", r.Name)
		}
		c.records[r.Name] = r
		if len(r.PageList) == 0 {
			continue
		}
		pl, err := pagination.ParsePageList(r.PageList)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", r.Name, err)
		}
		c.pagelists[r.Name] = pl
	}
	return c, nil
}

// Open loads a catalog file through a Loader.
func Open(path string) (*Catalog, error) {
	records, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	return New(records)
}

// FindResourceByName implements resource.Repository.
func (c *Catalog) FindResourceByName(_ context.Context, name string) (*resource.ScanResource, error) {
	r, ok := c.records[name]
	if !ok {
		return nil, nil
	}
	return r.Resource(), nil
}

// FindIndex returns the index named name, or nil when it is not catalogued.
func (c *Catalog) FindIndex(_ context.Context, name string) (*Index, error) {
	r, ok := c.records[name]
	if !ok {
		return nil, nil
	}
	return &Index{
		Resource:     r.Resource(),
		PageList:     c.pagelists[name],
		DisplayWidth: r.DisplayWidth,
	}, nil
}

// Names returns the catalogued names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.records))
	for name := range c.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record returns the raw record of name.
func (c *Catalog) Record(name string) (IndexRecord, bool) {
	r, ok := c.records[name]
	return r, ok
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}
