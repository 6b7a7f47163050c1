package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// legacyDjvuSegment is the old "<scan>/djvu/<n>" page naming.
const legacyDjvuSegment = "djvu/"

// Resolver maps index and page identifiers to scans and ordinals.
type Resolver struct {
	repo        Repository
	indexPrefix string
	pagePrefix  string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNamespaces strips "<index>:" and "<page>:" prefixes from identifiers.
func WithNamespaces(index, page string) Option {
	return func(r *Resolver) {
		if index != "" {
			r.indexPrefix = index + ":"
		}
		if page != "" {
			r.pagePrefix = page + ":"
		}
	}
}

// NewResolver creates a resolver backed by repo.
func NewResolver(repo Repository, opts ...Option) *Resolver {
	r := &Resolver{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveForIndex returns the scan an index is named after.
func (r *Resolver) ResolveForIndex(ctx context.Context, id string) (*ScanResource, error) {
	name := strings.TrimPrefix(strings.TrimSpace(id), r.indexPrefix)
	return r.lookup(ctx, name)
}

// ResolveForPage returns the scan of a page and its ordinal. A bare scan
// name resolves with no ordinal. When the suffix is not a valid ordinal the
// scan is still returned together with ErrPageNumberNotFound.
func (r *Resolver) ResolveForPage(ctx context.Context, id string) (Resolution, error) {
	name, suffix, hasSuffix := SplitPageID(r.trimPage(id))

	res, err := r.lookup(ctx, name)
	if err != nil {
		return Resolution{}, err
	}
	if !hasSuffix {
		return Resolution{Resource: res}, nil
	}

	ordinal, err := ParseOrdinal(suffix)
	if err != nil {
		return Resolution{Resource: res}, fmt.Errorf("%q: %w", id, err)
	}
	return Resolution{Resource: res, Ordinal: ordinal}, nil
}

// OrdinalOf extracts the 1-based ordinal of a page identifier without
// looking the scan up.
func (r *Resolver) OrdinalOf(id string) (int, error) {
	_, suffix, hasSuffix := SplitPageID(r.trimPage(id))
	if !hasSuffix {
		return 0, fmt.Errorf("%w: %q names no page", ErrPageNumberNotFound, id)
	}
	ordinal, err := ParseOrdinal(suffix)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", id, err)
	}
	return ordinal, nil
}

func (r *Resolver) trimPage(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), r.pagePrefix)
}

func (r *Resolver) lookup(ctx context.Context, name string) (*ScanResource, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrResourceNotFound)
	}
	res, err := r.repo.FindResourceByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up scan %q: %w", name, err)
	}
	if res == nil || !res.Exists {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
	}
	return res, nil
}

// SplitPageID splits "<scan>/<suffix>" at the first slash. Scan names
// never contain a slash.
func SplitPageID(id string) (name, suffix string, hasSuffix bool) {
	return strings.Cut(id, "/")
}

// ParseOrdinal parses a page suffix: decimal digits with a value of at
// least 1, optionally behind the legacy "djvu/" segment.
func ParseOrdinal(suffix string) (int, error) {
	digits := strings.TrimPrefix(suffix, legacyDjvuSegment)
	if digits == "" {
		return 0, fmt.Errorf("%w: empty page suffix", ErrPageNumberNotFound)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not a page number", ErrPageNumberNotFound, suffix)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrPageNumberNotFound, suffix, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: page numbers start at 1, got %d", ErrPageNumberNotFound, n)
	}
	return n, nil
}
