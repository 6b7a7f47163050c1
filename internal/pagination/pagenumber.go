package pagination

import (
	"fmt"
	"strconv"

	"github.com/lehigh-university-libraries/proofreader/internal/lang"
)

// DisplayMode selects the numbering system a page number is rendered with.
// The values are the tokens used in stored pagelists.
type DisplayMode string

const (
	DisplayNormal         DisplayMode = "normal"
	DisplayRoman          DisplayMode = "roman"
	DisplayHighRoman      DisplayMode = "highroman"
	DisplayFolio          DisplayMode = "folio"
	DisplayFolioRoman     DisplayMode = "folioroman"
	DisplayFolioHighRoman DisplayMode = "foliohighroman"
)

var displayModes = map[DisplayMode]bool{
	DisplayNormal:         true,
	DisplayRoman:          true,
	DisplayHighRoman:      true,
	DisplayFolio:          true,
	DisplayFolioRoman:     true,
	DisplayFolioHighRoman: true,
}

// DisplayModes lists every supported mode.
func DisplayModes() []DisplayMode {
	return []DisplayMode{
		DisplayNormal, DisplayRoman, DisplayHighRoman,
		DisplayFolio, DisplayFolioRoman, DisplayFolioHighRoman,
	}
}

// ParseDisplayMode validates a mode token. The empty string is DisplayNormal.
func ParseDisplayMode(s string) (DisplayMode, error) {
	if s == "" {
		return DisplayNormal, nil
	}
	m := DisplayMode(s)
	if !displayModes[m] {
		return "", fmt.Errorf("unknown display mode: %s", s)
	}
	return m, nil
}

// IsFolio reports whether the mode carries a recto/verso marker.
func (m DisplayMode) IsFolio() bool {
	return m == DisplayFolio || m == DisplayFolioRoman || m == DisplayFolioHighRoman
}

// base returns the numeral system of a folio mode.
func (m DisplayMode) base() DisplayMode {
	switch m {
	case DisplayFolio:
		return DisplayNormal
	case DisplayFolioRoman:
		return DisplayRoman
	case DisplayFolioHighRoman:
		return DisplayHighRoman
	}
	return m
}

// PageNumber is the label of one page as stored in an index, before formatting.
type PageNumber struct {
	number string
	mode   DisplayMode
	empty  bool
	recto  bool
}

// New builds a page number. An unknown mode falls back to DisplayNormal;
// recto is only read by folio modes.
func New(number string, mode DisplayMode, empty, recto bool) PageNumber {
	if !displayModes[mode] {
		mode = DisplayNormal
	}
	return PageNumber{number: number, mode: mode, empty: empty, recto: recto}
}

// Plain is a numbered page in DisplayNormal.
func Plain(number string) PageNumber {
	return New(number, DisplayNormal, false, true)
}

// Number returns the raw stored content.
func (p PageNumber) Number() string {
	return p.number
}

// DisplayMode returns the numbering system.
func (p PageNumber) DisplayMode() DisplayMode {
	return p.mode
}

// IsEmpty reports whether the page is unnumbered.
func (p PageNumber) IsEmpty() bool {
	return p.empty
}

// IsRecto reports the folio side.
func (p PageNumber) IsRecto() bool {
	return p.recto
}

// IsNumeric reports whether the content is a non-negative decimal integer.
func (p PageNumber) IsNumeric() bool {
	return isDigits(p.number)
}

// Format renders the label shown to readers. Folio markers are superscript.
func (p PageNumber) Format(l lang.Language) string {
	return p.render(l, true)
}

// Raw renders the label as plain text, e.g. "12r" instead of "12<sup>r</sup>".
func (p PageNumber) Raw(l lang.Language) string {
	return p.render(l, false)
}

func (p PageNumber) render(l lang.Language, markup bool) string {
	if p.empty {
		return ""
	}

	numeral := p.numeral(l)
	if !p.mode.IsFolio() {
		return numeral
	}

	side := "v"
	if p.recto {
		side = "r"
	}
	if markup {
		return numeral + "<sup>" + side + "</sup>"
	}
	return numeral + side
}

func (p PageNumber) numeral(l lang.Language) string {
	if !p.IsNumeric() {
		return p.number
	}

	switch p.mode.base() {
	case DisplayRoman, DisplayHighRoman:
		n, err := strconv.Atoi(p.number)
		if err != nil || n < 1 || n >= romanLimit {
			// Roman modes never transliterate, even out of range.
			return p.number
		}
		if p.mode.base() == DisplayRoman {
			return lowerRoman(n)
		}
		return upperRoman(n)
	default:
		return l.TransformDigits(p.number)
	}
}

func (p PageNumber) String() string {
	return p.Raw(lang.English)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
