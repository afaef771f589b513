// Package mcts implements a PUCT-guided Monte Carlo tree search over
// 5x5 Go positions, optionally primed with neural priors from the
// inference package.
package mcts

import (
	"github.com/chewxy/math32"

	"github.com/katalite/go5x5/board"
)

// PassAction is the action index identifying Pass within a flat,
// length-26 action vector.
const PassAction = board.NumPoints

// Node is one position in an owned search tree: a parent pointer plus a
// slice of owned children. Unlike the teacher's arena-of-nodes design
// (mcts.Node living in a flat slice, indexed by a Naughty handle, guarded
// by a per-node mutex), a Node here is a plain heap value reached only
// through its parent's Children slice, because the concurrency model
// forbids concurrently traversing one tree — there is nothing for a lock
// to protect.
type Node struct {
	Parent   *Node
	Children []*Node

	State  board.GameState
	Action int // index into the flat action vector, or PassAction

	Prior     float32
	Visits    uint32
	BlackWins float32
	WhiteWins float32
	ForceScan bool // root-only: force-select under-visited children first
}

// NewRoot returns a fresh root node for state. state is cloned so the
// tree never aliases the caller's group index.
func NewRoot(state board.GameState) *Node {
	return &Node{State: state.Clone(), Action: -1}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// puct returns the PUCT score used to rank n as a candidate child of its
// parent. A never-visited child scores purely on its exploration bonus.
func (n *Node) puct(cPUCT float32) float32 {
	if n.Parent == nil {
		return 0
	}
	exploit := float32(0)
	if n.Visits > 0 {
		// n.State.ToMove is whoever moves next at n, i.e. n's own mover's
		// opponent is the player who chose to reach n from Parent — score
		// from that chooser's perspective.
		if n.State.ToMove == board.Black {
			exploit = n.WhiteWins / float32(n.Visits)
		} else {
			exploit = n.BlackWins / float32(n.Visits)
		}
	}
	explore := cPUCT * n.Prior * math32.Sqrt(float32(n.Parent.Visits)) / (1 + float32(n.Visits))
	return exploit + explore
}

// selectBestChild picks the child to descend into: under force-select,
// the first child visited fewer than sqrt(forceK * n.Visits) times wins
// outright (mirroring the original engine's forced-exploration override),
// otherwise the highest-PUCT child wins.
func (n *Node) selectBestChild(cPUCT, forceK float32) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	if n.ForceScan {
		threshold := math32.Sqrt(forceK * float32(n.Visits))
		for _, c := range n.Children {
			if float32(c.Visits) < threshold {
				return c
			}
		}
	}
	var best *Node
	bestScore := float32(math32.Inf(-1))
	for _, c := range n.Children {
		score := c.puct(cPUCT)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// recordResult adds one game's outcome to n and every ancestor, matching
// the original's parent-chasing setResult.
func (n *Node) recordResult(blackWins, whiteWins float32) {
	for cur := n; cur != nil; cur = cur.Parent {
		cur.BlackWins += blackWins
		cur.WhiteWins += whiteWins
	}
}

// VisitShares returns the length-26 fraction of visits each action
// received, used as the improved policy target.
func (n *Node) VisitShares() [PassAction + 1]float32 {
	var shares [PassAction + 1]float32
	var total float32
	for _, c := range n.Children {
		total += float32(c.Visits)
	}
	if total == 0 {
		return shares
	}
	for _, c := range n.Children {
		shares[c.Action] = float32(c.Visits) / total
	}
	return shares
}

// BestChild returns the most-visited child, breaking ties by first
// encountered (matching the teacher's scan-in-order tie-break in
// bestMove).
func (n *Node) BestChild() *Node {
	var best *Node
	for _, c := range n.Children {
		if best == nil || c.Visits > best.Visits {
			best = c
		}
	}
	return best
}

// ActionToPoint converts a flat action index back into a board point,
// returning board.Pass for PassAction.
func ActionToPoint(action int) board.Point {
	if action == PassAction {
		return board.Pass
	}
	return board.PointFromIdx(action)
}

// PointToAction is the inverse of ActionToPoint.
func PointToAction(p board.Point) int {
	if p.IsPass() {
		return PassAction
	}
	return p.Idx()
}
