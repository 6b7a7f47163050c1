package quality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anon     = User{}
	reader   = User{Name: "Reader"}
	reviewer = User{Name: "Reviewer", Groups: []string{"proofreaders"}}
	second   = User{Name: "Second"}
)

func testMachine() *Machine {
	return NewMachine(NewStaticCapabilities([]string{"Second"}, []string{"proofreaders"}))
}

func TestIsChangeAllowed(t *testing.T) {
	tests := []struct {
		name     string
		old      State
		to       Level
		user     User
		expected bool
	}{
		{name: "plain user clears text", old: State{Level: NotProofread}, to: WithoutText, user: reader, expected: true},
		{name: "plain user adds text", old: State{Level: WithoutText}, to: NotProofread, user: reader, expected: true},
		{name: "anonymous user adds text", old: State{Level: WithoutText}, to: NotProofread, user: anon, expected: true},
		{name: "plain user cannot mark problematic", old: State{Level: NotProofread}, to: Problematic, user: reader, expected: false},
		{name: "plain user cannot proofread", old: State{Level: NotProofread}, to: Proofread, user: reader, expected: false},
		{name: "plain user cannot validate", old: State{Level: NotProofread}, to: Validated, user: reader, expected: false},
		{name: "plain user cannot demote proofread", old: State{Level: Proofread, User: "Reviewer"}, to: NotProofread, user: reader, expected: false},
		{name: "plain user keeps proofread level", old: State{Level: Proofread, User: "Reviewer"}, to: Proofread, user: reader, expected: true},
		{name: "elevated user validates problematic", old: State{Level: Problematic}, to: Validated, user: reviewer, expected: true},
		{name: "elevated user proofreads", old: State{Level: NotProofread}, to: Proofread, user: reviewer, expected: true},
		{name: "elevated by name", old: State{Level: NotProofread}, to: Problematic, user: second, expected: true},
		{name: "validator cannot undo own validation", old: State{Level: Validated, User: "Reviewer"}, to: Proofread, user: reviewer, expected: false},
		{name: "validator cannot clear own validation", old: State{Level: Validated, User: "Reviewer"}, to: WithoutText, user: reviewer, expected: false},
		{name: "second reviewer undoes validation", old: State{Level: Validated, User: "Reviewer"}, to: Proofread, user: second, expected: true},
		{name: "validator keeps own validation", old: State{Level: Validated, User: "Reviewer"}, to: Validated, user: reviewer, expected: true},
		{name: "unknown validator can be undone", old: State{Level: Validated}, to: Proofread, user: reviewer, expected: true},
		{name: "level above range", old: State{Level: Proofread}, to: Level(5), user: reviewer, expected: false},
		{name: "level below range", old: State{Level: WithoutText}, to: Level(-1), user: reviewer, expected: false},
	}

	m := testMachine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.IsChangeAllowed(tt.old, tt.to, tt.user))
		})
	}
}

func TestAllowedLevels(t *testing.T) {
	tests := []struct {
		name     string
		old      State
		user     User
		expected []Level
	}{
		{
			name:     "plain user on new page",
			old:      Initial(),
			user:     reader,
			expected: []Level{WithoutText, NotProofread},
		},
		{
			name:     "plain user on proofread page",
			old:      State{Level: Proofread, User: "Reviewer"},
			user:     reader,
			expected: []Level{Proofread},
		},
		{
			name:     "elevated user in edit form order",
			old:      Initial(),
			user:     reviewer,
			expected: []Level{WithoutText, Problematic, NotProofread, Proofread, Validated},
		},
		{
			name:     "own validation",
			old:      State{Level: Validated, User: "Reviewer"},
			user:     reviewer,
			expected: []Level{Validated},
		},
	}

	m := testMachine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.AllowedLevels(tt.old, tt.user))
		})
	}
}

func TestCheckAndApply(t *testing.T) {
	m := testMachine()

	err := m.Check(State{Level: NotProofread}, Problematic, reader)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransitionRejected))

	err = m.Check(State{Level: NotProofread}, Level(9), reviewer)
	assert.True(t, errors.Is(err, ErrInvalidLevel))

	next, err := m.Apply(State{Level: Problematic, User: "Reader"}, Validated, reviewer)
	require.NoError(t, err)
	assert.Equal(t, State{Level: Validated, User: "Reviewer"}, next)

	// Re-saving at the same level keeps the original setter.
	same, err := m.Apply(next, Validated, second)
	require.NoError(t, err)
	assert.Equal(t, next, same)

	old := State{Level: Validated, User: "Reviewer"}
	kept, err := m.Apply(old, Proofread, reviewer)
	assert.True(t, errors.Is(err, ErrTransitionRejected))
	assert.Equal(t, old, kept)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("3")
	require.NoError(t, err)
	assert.Equal(t, Proofread, l)

	l, err = ParseLevel("validated")
	require.NoError(t, err)
	assert.Equal(t, Validated, l)

	_, err = ParseLevel("7")
	assert.True(t, errors.Is(err, ErrInvalidLevel))

	_, err = ParseLevel("finished")
	assert.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestCategoriesLabel(t *testing.T) {
	c := Categories{Proofread: "Korrekturgelesen"}
	assert.Equal(t, "Korrekturgelesen", c.Label(Proofread))
	assert.Equal(t, "Validated", c.Label(Validated))
}
