package mcts

// Visit count and score of a node, the score is accumulated from the
// automated player's perspective: +1 win, -1 loss, 0 draw
type NodeStats struct {
	visits int32
	score  int32
}

// Get number of visits to this node
func (stats *NodeStats) N() int32 {
	return stats.visits
}

// Accumulated score
func (stats *NodeStats) Score() int32 {
	return stats.score
}

// Mean score, VisitFloor keeps unvisited nodes at 0 instead of NaN
func (stats *NodeStats) Mean() float64 {
	return float64(stats.score) / (float64(stats.visits) + VisitFloor)
}

// Record one visit with given result (+1/-1/0)
func (stats *NodeStats) Add(result int) {
	stats.visits++
	stats.score += int32(result)
}

// Overwrite the score, used by minimax to store the node's value
func (stats *NodeStats) SetScore(score int32) {
	stats.score = score
}
