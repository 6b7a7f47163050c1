package quality

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrTransitionRejected is returned when a user may not move a page to the requested level.
	ErrTransitionRejected = errors.New("quality change not allowed")
	// ErrInvalidLevel is returned for levels outside 0-4.
	ErrInvalidLevel = errors.New("invalid quality level")
)

// Level is the proofreading status of a page.
type Level int

const (
	WithoutText  Level = 0
	NotProofread Level = 1
	Problematic  Level = 2
	Proofread    Level = 3
	Validated    Level = 4
)

// Levels lists every level in ascending order.
func Levels() []Level {
	return []Level{WithoutText, NotProofread, Problematic, Proofread, Validated}
}

// editOrder is the order in which the edit form offers the levels.
var editOrder = []Level{WithoutText, Problematic, NotProofread, Proofread, Validated}

// Valid reports whether l is one of the five levels.
func (l Level) Valid() bool {
	return l >= WithoutText && l <= Validated
}

func (l Level) String() string {
	switch l {
	case WithoutText:
		return "without_text"
	case NotProofread:
		return "not_proofread"
	case Problematic:
		return "problematic"
	case Proofread:
		return "proofread"
	case Validated:
		return "validated"
	}
	return "level_" + strconv.Itoa(int(l))
}

// ParseLevel accepts the numeric form ("3") or the name ("proofread").
func ParseLevel(s string) (Level, error) {
	if n, err := strconv.Atoi(s); err == nil {
		l := Level(n)
		if !l.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
		}
		return l, nil
	}
	for _, l := range Levels() {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// User is the acting user of an edit. Groups feed the capability check.
type User struct {
	Name   string   `json:"name" yaml:"name"`
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// State is the persisted quality of a page: the level and who set it.
type State struct {
	Level Level  `json:"level" yaml:"level"`
	User  string `json:"user,omitempty" yaml:"user,omitempty"`
}

// Initial is the state of a page that has never been saved.
func Initial() State {
	return State{Level: NotProofread}
}
