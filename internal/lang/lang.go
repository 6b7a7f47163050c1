package lang

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// ErrUnknownLanguage is returned when a language code cannot be parsed as a BCP 47 tag.
var ErrUnknownLanguage = errors.New("unknown language")

// zeroDigits maps a base language to the code point of its native zero.
// All of these scripts encode 0-9 contiguously.
var zeroDigits = map[string]rune{
	"ar": '٠', // Arabic-Indic
	"as": '০', // Bengali
	"bn": '০',
	"bo": '༠', // Tibetan
	"dz": '༠',
	"fa": '۰', // Extended Arabic-Indic
	"gu": '૦', // Gujarati
	"km": '០', // Khmer
	"lo": '໐', // Lao
	"mr": '०', // Devanagari
	"my": '၀', // Myanmar
	"ne": '०',
	"or": '୦', // Oriya
	"ps": '۰',
}

// Language is the active language of a formatting call: a tag plus the
// digit glyphs it writes decimal numbers with.
type Language struct {
	tag    language.Tag
	digits []rune
}

// English writes latin digits.
var English = Language{tag: language.English}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	return l.tag
}

// Code returns the base language code, e.g. "gu".
func (l Language) Code() string {
	base, _ := l.tag.Base()
	return base.String()
}

// HasNativeDigits reports whether decimal digits are transliterated.
func (l Language) HasNativeDigits() bool {
	return len(l.digits) == 10
}

// TransformDigits replaces every ASCII digit in s by the language's glyph.
func (l Language) TransformDigits(s string) string {
	if !l.HasNativeDigits() {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(l.digits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Registry resolves language codes into Languages.
type Registry struct {
	digits map[string][]rune
}

// NewRegistry builds a registry from the built-in digit table, with
// overrides keyed by base language code. An override value is either the
// ten digit glyphs 0-9 or "latn" to disable transliteration.
func NewRegistry(overrides map[string]string) (*Registry, error) {
	r := &Registry{digits: make(map[string][]rune, len(zeroDigits)+len(overrides))}
	for code, zero := range zeroDigits {
		glyphs := make([]rune, 10)
		for i := range glyphs {
			glyphs[i] = zero + rune(i)
		}
		r.digits[code] = glyphs
	}

	for code, glyphs := range overrides {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: digit override %q: %w", ErrUnknownLanguage, code, err)
		}
		base, _ := tag.Base()
		if glyphs == "latn" {
			delete(r.digits, base.String())
			continue
		}
		if utf8.RuneCountInString(glyphs) != 10 {
			return nil, fmt.Errorf("digit override for %q must list exactly 10 glyphs, got %q", code, glyphs)
		}
		r.digits[base.String()] = []rune(glyphs)
	}

	return r, nil
}

// Lookup parses code and returns the matching Language. An empty code
// yields English.
func (r *Registry) Lookup(code string) (Language, error) {
	if strings.TrimSpace(code) == "" {
		return English, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q: %w", ErrUnknownLanguage, code, err)
	}
	base, _ := tag.Base()
	return Language{tag: tag, digits: r.digits[base.String()]}, nil
}

var builtin, _ = NewRegistry(nil)

// Lookup resolves code against the built-in digit table.
func Lookup(code string) (Language, error) {
	return builtin.Lookup(code)
}

// MustLookup is like Lookup but panics on an unparsable code.
func MustLookup(code string) Language {
	l, err := Lookup(code)
	if err != nil {
		panic(err)
	}
	return l
}
