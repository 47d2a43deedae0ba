package statemachine

import (
	"fmt"
	"strings"
)

// VoteState is where an employee stands for a single calendar day.
type VoteState string

const (
	NotVoted VoteState = "not_voted"
	Voted    VoteState = "voted"
)

// Transition is one allowed move of the per-day vote state.
type Transition struct {
	From VoteState
	To   VoteState
	// Actor is who triggers the move ("employee" or "system").
	Actor string
}

var validTransitions = []Transition{
	// An employee casts the day's single vote
	{From: NotVoted, To: Voted, Actor: "employee"},
}

type transitionKey struct {
	From VoteState
	To   VoteState
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// States lists every per-day vote state in lifecycle order.
func States() []VoteState {
	return []VoteState{NotVoted, Voted}
}

// StateFor maps "has a vote row for the day" onto a state.
func StateFor(hasVoted bool) VoteState {
	if hasVoted {
		return Voted
	}
	return NotVoted
}

// ValidTransitionsFrom returns the states reachable from s.
func ValidTransitionsFrom(s VoteState) []VoteState {
	var nexts []VoteState
	for _, t := range validTransitions {
		if t.From == s {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to VoteState) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s -> %s (valid from %s: %s)", from, to, from, describeValidFrom(from))
}

// IsTerminal reports whether no transition leaves s for the rest of the day.
func IsTerminal(s VoteState) bool {
	return len(ValidTransitionsFrom(s)) == 0
}

func describeValidFrom(s VoteState) string {
	nexts := ValidTransitionsFrom(s)
	if len(nexts) == 0 {
		return "none (terminal for the day)"
	}
	parts := make([]string, len(nexts))
	for i, n := range nexts {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the state table, used by the /api/state-machine route.
func GetAllTransitions() []Transition {
	return validTransitions
}
