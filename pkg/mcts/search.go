package mcts

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

// State of a single decision. Nothing here outlives the call to Search,
// the tactical verdict and the approved move set included
type search struct {
	root            *Node
	player          board.Player
	limits          *Limits
	limiter         *Limiter
	listener        *StatsListener
	rng             *rand.Rand
	selection       SelectionPolicy
	bestChildPolicy BestChildPolicy
	exploration     float64
	hybrid          bool
	treeDepth       int
	minimaxDepth    int

	probe    ProbeResult
	approved []int // root children allowed after a forced loss, nil when unrestricted

	minimaxMove int

	size     int
	maxdepth int
	start    time.Time

	scratch *board.Board
	buf     []int
}

// Actual search function implementation, repeats:
//
// 1. selection - descend with UCT (or at random) to a node that was not visited yet
//
// 2. expansion - add the node's children, if within the depth budget
//
// 3. rollout - random playout from the node
//
// 4. backpropagate - increment visits and add the result up to the root
//
// In hybrid mode the first trial ending within the probe depth runs the tactical
// probe on the root, which may end the search right away or restrict the root moves
func (s *search) runTrials() int {
	for s.limiter.Ok() {
		_, depth := s.trial(s.root)
		s.limiter.Inc()

		if s.hybrid && s.probe.Status == NotEngaged && s.limits.ProbeDepth > 0 && depth <= s.limits.ProbeDepth {
			if move, done := s.engageProbe(); done {
				return move
			}
		}

		if s.listener.onCycle != nil && int(s.limiter.Trials())%max(1, s.listener.nCycles) == 0 {
			s.listener.onCycle(toListenerStats(s))
		}
	}

	s.limiter.EvaluateStopReason()
	if best := s.bestChild(s.root); best != nil {
		return best.Move
	}
	return board.NoMove
}

// One selection/expansion/rollout/backpropagation pass from node, returns the
// outcome and the depth (counted from the root) at which the game ended
func (s *search) trial(node *Node) (board.Outcome, int) {
	var outcome board.Outcome
	var depth int

	s.maxdepth = max(s.maxdepth, node.Depth)

	if node.Terminal() {
		// The player who made the node's move won
		outcome, depth = board.WinFor(node.Turn.Opponent()), node.Depth
	} else {
		if node.Depth < s.treeDepth {
			s.size += node.expand()
		}

		var child *Node
		if node.N() > 0 && !node.Leaf() {
			child = s.selectChild(node)
		}

		if child == nil {
			// Rollout on a scratch copy, the node keeps its snapshot
			s.scratch.CopyFrom(node.board)
			var plies int
			outcome, plies = rollout(s.scratch, node.Turn, node.Move, s.rng, s.buf)
			depth = node.Depth + plies
		} else {
			child.materialize(node)
			outcome, depth = s.trial(child)
		}
	}

	node.Add(outcome.Score(s.player))
	return outcome, depth
}

// Runs the tactical probe on the root, returns (move, true) if the decision is already made
func (s *search) engageProbe() (int, bool) {
	s.probe.Status = Engaged
	if s.listener.onEngage != nil {
		s.listener.onEngage(toListenerStats(s))
	}

	started := time.Now()
	s.probe = TacticalProbe(s.root.board, s.player)

	log.Debug().
		Str("status", s.probe.Status.String()).
		Int("move", s.probe.Move).
		Ints("approved", s.probe.Approved).
		Int("trial", int(s.limiter.Trials())).
		Dur("took", time.Since(started)).
		Msg("tactical probe")

	if s.listener.onProbe != nil {
		s.listener.onProbe(toListenerStats(s))
	}

	switch s.probe.Status {
	case ImmediateWin:
		s.limiter.SetStop(StopImmediateWin)
		return s.probe.Move, true
	case SomeForcedLoss:
		// Nothing left to search for when a single move survives, or when
		// none does: every move ties, the first one is played like minimax would
		if len(s.probe.Approved) == 1 || s.probe.AllMovesLose() {
			s.limiter.SetStop(StopForcedMove)
			return s.probe.Move, true
		}
		s.approved = s.probe.Approved
	}
	return board.NoMove, false
}
