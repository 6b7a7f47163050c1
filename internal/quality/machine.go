package quality

import (
	"fmt"
	"slices"
)

// CapabilityChecker decides whether a user holds the elevated "set quality" capability.
type CapabilityChecker interface {
	HasElevatedQualityCapability(user User) bool
}

// StaticCapabilities grants the capability to a fixed set of user names and groups.
type StaticCapabilities struct {
	users  map[string]bool
	groups map[string]bool
}

// NewStaticCapabilities builds a checker from configured names and groups.
func NewStaticCapabilities(users, groups []string) *StaticCapabilities {
	c := &StaticCapabilities{
		users:  make(map[string]bool, len(users)),
		groups: make(map[string]bool, len(groups)),
	}
	for _, u := range users {
		c.users[u] = true
	}
	for _, g := range groups {
		c.groups[g] = true
	}
	return c
}

func (c *StaticCapabilities) HasElevatedQualityCapability(user User) bool {
	if user.Name != "" && c.users[user.Name] {
		return true
	}
	for _, g := range user.Groups {
		if c.groups[g] {
			return true
		}
	}
	return false
}

// Machine holds the transition rules between quality levels.
type Machine struct {
	caps CapabilityChecker
}

func NewMachine(caps CapabilityChecker) *Machine {
	return &Machine{caps: caps}
}

// IsChangeAllowed reports whether user may move a page from old to level.
// Keeping the current level is always allowed.
func (m *Machine) IsChangeAllowed(old State, level Level, user User) bool {
	if !level.Valid() {
		return false
	}
	if old.Level == level {
		return true
	}

	if !m.caps.HasElevatedQualityCapability(user) {
		return old.Level <= NotProofread && level <= NotProofread
	}

	// Undoing a validation needs a second reviewer.
	if old.Level == Validated && old.User != "" && old.User == user.Name {
		return false
	}
	return true
}

// Check is IsChangeAllowed returning ErrTransitionRejected.
func (m *Machine) Check(old State, level Level, user User) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	if !m.IsChangeAllowed(old, level, user) {
		return fmt.Errorf("%w: %s -> %s by %q", ErrTransitionRejected, old.Level, level, user.Name)
	}
	return nil
}

// AllowedLevels returns the levels user may pick for a page in state old,
// in the order the edit form presents them.
func (m *Machine) AllowedLevels(old State, user User) []Level {
	return slices.DeleteFunc(slices.Clone(editOrder), func(l Level) bool {
		return !m.IsChangeAllowed(old, l, user)
	})
}

// Apply returns the state after user sets level, or ErrTransitionRejected.
func (m *Machine) Apply(old State, level Level, user User) (State, error) {
	if err := m.Check(old, level, user); err != nil {
		return old, err
	}
	if old.Level == level {
		return old, nil
	}
	return State{Level: level, User: user.Name}, nil
}
