package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to VoteState
		ok       bool
	}{
		{NotVoted, Voted, true},
		{Voted, Voted, false},
		{Voted, NotVoted, false},
		{NotVoted, NotVoted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTerminalForTheDay(t *testing.T) {
	assert.False(t, IsTerminal(NotVoted))
	assert.True(t, IsTerminal(Voted))
	assert.ErrorContains(t, CanTransition(Voted, Voted), "terminal for the day")
}

func TestStateFor(t *testing.T) {
	assert.Equal(t, NotVoted, StateFor(false))
	assert.Equal(t, Voted, StateFor(true))
	assert.Equal(t, []VoteState{Voted}, ValidTransitionsFrom(NotVoted))
	assert.Len(t, GetAllTransitions(), 1)
	assert.Equal(t, []VoteState{NotVoted, Voted}, States())
}
