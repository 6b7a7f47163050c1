package pagination

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidPageList is returned for pagelist keys that are not a page or a
// page range, and for restart numbers that are out of range.
var ErrInvalidPageList = errors.New("invalid pagelist")

// maxPageListNumber bounds page keys and restart values so that numbering
// arithmetic cannot overflow.
const maxPageListNumber = math.MaxInt32

type pageRange struct {
	from, to int
}

type pageListEntry struct {
	pages   pageRange
	value   string
	restart int
}

// PageList holds the numbering preferences of an index, as written in its
// pagelist: keys are ordinals ("5") or ranges ("1to4"), values are a
// display mode, "-"/"empty", a restart number or a literal label.
type PageList struct {
	entries []pageListEntry
}

// ParsePageList validates and orders the pagelist parameters.
func ParsePageList(params map[string]string) (*PageList, error) {
	pl := &PageList{entries: make([]pageListEntry, 0, len(params))}
	for key, value := range params {
		rng, err := parsePageRange(key)
		if err != nil {
			return nil, err
		}
		entry := pageListEntry{pages: rng, value: strings.TrimSpace(value)}
		if isDigits(entry.value) {
			entry.restart, err = strconv.Atoi(entry.value)
			if err != nil || entry.restart > maxPageListNumber {
				return nil, fmt.Errorf("%w: restart %q of %q is out of range", ErrInvalidPageList, entry.value, key)
			}
		}
		pl.entries = append(pl.entries, entry)
	}

	// Wider ranges first so that a single page inside them overrides them.
	sort.Slice(pl.entries, func(i, j int) bool {
		a, b := pl.entries[i], pl.entries[j]
		if a.pages.from != b.pages.from {
			return a.pages.from < b.pages.from
		}
		if a.pages.to != b.pages.to {
			return a.pages.to > b.pages.to
		}
		return a.value < b.value
	})

	return pl, nil
}

func parsePageRange(key string) (pageRange, error) {
	key = strings.TrimSpace(key)
	from, to, isRange := strings.Cut(key, "to")
	if !isRange {
		to = from
	}
	if !isDigits(from) || !isDigits(to) {
		return pageRange{}, fmt.Errorf("%w: key %q", ErrInvalidPageList, key)
	}

	f, err := strconv.Atoi(from)
	if err != nil {
		return pageRange{}, fmt.Errorf("%w: key %q: %w", ErrInvalidPageList, key, err)
	}
	t, err := strconv.Atoi(to)
	if err != nil {
		return pageRange{}, fmt.Errorf("%w: key %q: %w", ErrInvalidPageList, key, err)
	}
	if f < 1 || t < f || t > maxPageListNumber {
		return pageRange{}, fmt.Errorf("%w: key %q", ErrInvalidPageList, key)
	}
	return pageRange{from: f, to: t}, nil
}

// Number returns the page number of the given 1-based ordinal. A nil
// PageList numbers every page by its ordinal.
func (pl *PageList) Number(ordinal int) PageNumber {
	if pl == nil {
		return Plain(strconv.Itoa(ordinal))
	}

	mode := DisplayNormal
	modeStart := 1
	resetAt, resetValue := 1, 1
	empty := false
	label := ""

	for _, e := range pl.entries {
		if e.pages.from > ordinal {
			break
		}
		inRange := ordinal <= e.pages.to

		switch {
		case e.value == "-" || e.value == "empty":
			if inRange {
				empty = true
			}
		case displayModes[DisplayMode(e.value)]:
			if inRange {
				mode = DisplayMode(e.value)
				modeStart = e.pages.from
			}
		case isDigits(e.value):
			// Restarts apply to every following page, inside the range or not.
			resetAt, resetValue = e.pages.from, e.restart
		default:
			if inRange {
				label = e.value
			}
		}
	}

	number := ordinal - resetAt + resetValue
	recto := true
	if mode.IsFolio() {
		// Two leaves share a folio number, recto first.
		anchor := max(modeStart, resetAt)
		leaf := ordinal - anchor
		number = anchor - resetAt + resetValue + leaf/2
		recto = leaf%2 == 0
	}

	content := strconv.Itoa(number)
	if label != "" {
		content = label
	}
	return New(content, mode, empty, recto)
}
