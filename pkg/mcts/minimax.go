package mcts

// Exhaustive minimax from the root, returns the move of the best child.
// Ties go to the first child in index order
func (s *search) runMinimax() int {
	s.minimax(s.root)
	s.limiter.SetStop(StopMinimax)
	return s.minimaxMove
}

// Scores the node (+1 the automated player wins, -1 loses, 0 draw or depth limit),
// stores the value as the node's score. Children are released once scored,
// except the root's
func (s *search) minimax(node *Node) int {
	s.maxdepth = max(s.maxdepth, node.Depth)
	node.visits++

	if node.Terminal() {
		value := lossValue
		if node.Turn.Opponent() == s.player {
			value = winValue
		}
		node.SetScore(int32(value))
		return value
	}

	if node.Depth < s.minimaxDepth {
		s.size += node.expand()
	}
	if node.Leaf() {
		node.SetScore(drawValue)
		return drawValue
	}

	maximizing := node.Turn == s.player
	bestIndex := -1
	best := 0
	for i := range node.Children {
		child := &node.Children[i]
		child.materialize(node)
		value := s.minimax(child)
		if bestIndex == -1 || (maximizing && value > best) || (!maximizing && value < best) {
			best = value
			bestIndex = i
		}
	}

	node.SetScore(int32(best))
	if node.Depth == 0 {
		s.minimaxMove = node.Children[bestIndex].Move
	} else {
		node.Children = nil
	}
	return best
}
