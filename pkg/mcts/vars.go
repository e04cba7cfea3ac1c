package mcts

// Exploration parameter C of the UCT bonus 2*C*sqrt(ln(N)/n), higher values
// increase exploration while lower values increase exploitation
const DefaultExplorationParam float64 = 1.0

// Added to every child's visit count in the mean score and exploration terms,
// so unvisited children get a huge (but finite) bonus instead of a division by zero
const VisitFloor float64 = 1e-9

// Seed used when none is given, same one for every engine, so a sequence
// of decisions is reproducible by default
const DefaultSeed uint64 = 1

// Probe values, from the automated player's perspective
const (
	lossValue = -1
	drawValue = 0
	winValue  = 1
)

const (
	// Pick the child with the best mean score, ties broken at random
	BestChildMeanScore BestChildPolicy = iota

	// Pick the most visited child, the classic MCTS choice
	BestChildMostVisits
)
