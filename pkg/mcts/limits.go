package mcts

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type Limits struct {
	// Rollout trial budget of a single decision
	Trials uint32 `json:"trials"`
	// Run the tactical probe once a rollout ends within this many plies
	// from the root, 0 disables the probe
	ProbeDepth int `json:"probe_depth"`
	// Deepest tree level that may still be expanded by MCTS
	TreeDepth int `json:"tree_depth"`
	// Deepest level expanded by the full-depth minimax
	MinimaxDepth int `json:"minimax_depth"`
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultTrials     uint32 = 30000
	DefaultProbeDepth int    = 4
	// Effectively infinite, the tree can't be deeper than the number of cells
	DefaultDepthLimit int = math.MaxInt
)

func DefaultLimits() *Limits {
	return &Limits{
		Trials:       DefaultTrials,
		ProbeDepth:   DefaultProbeDepth,
		TreeDepth:    DefaultDepthLimit,
		MinimaxDepth: DefaultDepthLimit,
	}
}

// Set the number of selection/expansion/rollout/backpropagation cycles
func (l *Limits) SetTrials(trials uint32) *Limits {
	l.Trials = trials
	return l
}

// Set the rollout length (counted from the root) which triggers the tactical probe
func (l *Limits) SetProbeDepth(depth int) *Limits {
	l.ProbeDepth = depth
	return l
}

// Set the maximum depth of the MCTS tree
func (l *Limits) SetTreeDepth(depth int) *Limits {
	l.TreeDepth = depth
	return l
}

// Set the maximum depth of the minimax search
func (l *Limits) SetMinimaxDepth(depth int) *Limits {
	l.MinimaxDepth = depth
	return l
}

func (l *Limits) Validate() error {
	switch {
	case l.Trials < 1:
		return fmt.Errorf("%w: trials must be positive", ErrInvalidLimits)
	case l.ProbeDepth < 0:
		return fmt.Errorf("%w: probe depth %d", ErrInvalidLimits, l.ProbeDepth)
	case l.TreeDepth < 1:
		return fmt.Errorf("%w: tree depth %d", ErrInvalidLimits, l.TreeDepth)
	case l.MinimaxDepth < 1:
		return fmt.Errorf("%w: minimax depth %d", ErrInvalidLimits, l.MinimaxDepth)
	}
	return nil
}

func (l *Limits) Clone() *Limits {
	clone := *l
	return &clone
}
