package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

// Node of the search tree. It exclusively owns its children (stored by value),
// there are no parent pointers. A child entry is created when its parent is
// expanded, its board snapshot is materialised on the first traversal
type Node struct {
	NodeStats
	Move     int          // move that produced this node, board.NoMove at a root without history
	Depth    int          // distance from the root
	Turn     board.Player // side to move in this position
	Children []Node

	board    *board.Board
	expanded bool
	terminal bool
}

func newRootNode(b *board.Board, turn board.Player, previousMove int) *Node {
	root := &Node{
		Move:  previousMove,
		Turn:  turn,
		board: b.Clone(),
	}
	root.terminal = previousMove != board.NoMove && root.board.IsWinningMove(previousMove)
	return root
}

// Board snapshot of this node, nil until the node is traversed
func (node *Node) Board() *board.Board {
	return node.board
}

func (node *Node) Expanded() bool {
	return node.expanded
}

// The move leading to this node completed a line
func (node *Node) Terminal() bool {
	return node.terminal
}

// Same as asking if the node has children
func (node *Node) Leaf() bool {
	return len(node.Children) == 0
}

// Adds one child per empty cell, in index order. Does nothing if already expanded,
// returns the number of added children
func (node *Node) expand() int {
	if node.expanded {
		return 0
	}
	node.expanded = true

	empty := node.board.EmptyCells()
	if len(empty) == 0 {
		return 0
	}

	next := node.Turn.Opponent()
	node.Children = make([]Node, len(empty))
	for i, mv := range empty {
		node.Children[i] = Node{
			Move:  mv,
			Depth: node.Depth + 1,
			Turn:  next,
		}
	}
	return len(empty)
}

// Creates the child's private board snapshot from its parent, if not done yet
func (node *Node) materialize(parent *Node) {
	if node.board != nil {
		return
	}
	node.board = parent.board.Clone()
	node.board.Place(node.Move, parent.Turn)
	node.terminal = node.board.IsWinningMove(node.Move)
}

// Find the child reached by given move
func (node *Node) Child(move int) *Node {
	for i := range node.Children {
		if node.Children[i].Move == move {
			return &node.Children[i]
		}
	}
	return nil
}

func (node *Node) String() string {
	return fmt.Sprintf("Node{move=%d depth=%d turn=%v n=%d score=%d children=%d}",
		node.Move, node.Depth, node.Turn, node.N(), node.Score(), len(node.Children))
}

// Helper function to count tree nodes
func countTreeNodes(node *Node) int {
	nodes := 1
	for i := range node.Children {
		nodes += countTreeNodes(&node.Children[i])
	}
	return nodes
}
