package mcts

import "fmt"

// Other types, which didn't fit to MCTS or Node files

type BestChildPolicy int

type SearchMode int

const (
	// Exhaustive minimax to the configured depth, no rollouts
	ModeMinimax SearchMode = iota
	// Plain Monte-Carlo tree search
	ModeMCTS
	// Monte-Carlo tree search with the 4-ply tactical probe
	ModeHybrid
)

func (m SearchMode) String() string {
	switch m {
	case ModeMinimax:
		return "minimax"
	case ModeMCTS:
		return "mcts"
	case ModeHybrid:
		return "hybrid"
	}
	return fmt.Sprintf("SearchMode(%d)", int(m))
}

// ParseSearchMode is the inverse of SearchMode.String
func ParseSearchMode(s string) (SearchMode, error) {
	for _, m := range []SearchMode{ModeMinimax, ModeMCTS, ModeHybrid} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown search mode %q", ErrInvalidOptions, s)
}

// How to choose the child to descend into during the tree traversal
type SelectionPolicy int

const (
	SelectRandom SelectionPolicy = iota
	SelectUCT
)

func (p SelectionPolicy) String() string {
	switch p {
	case SelectRandom:
		return "random"
	case SelectUCT:
		return "uct"
	}
	return fmt.Sprintf("SelectionPolicy(%d)", int(p))
}

func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	for _, p := range []SelectionPolicy{SelectRandom, SelectUCT} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown selection policy %q", ErrInvalidOptions, s)
}

// Verdict of the tactical probe, lives only for a single decision
type TacticalStatus int

const (
	// Probe not run yet
	NotEngaged TacticalStatus = iota
	// A short trial triggered the probe, the verdict is pending
	Engaged
	// No move loses within the horizon
	NoForcedOutcome
	// Some (or every) move loses within the horizon
	SomeForcedLoss
	// A move wins right away
	ImmediateWin
)

func (s TacticalStatus) String() string {
	switch s {
	case NotEngaged:
		return "not engaged"
	case Engaged:
		return "engaged"
	case NoForcedOutcome:
		return "no forced outcome"
	case SomeForcedLoss:
		return "some forced loss"
	case ImmediateWin:
		return "immediate win"
	}
	return fmt.Sprintf("TacticalStatus(%d)", int(s))
}
