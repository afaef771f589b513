// Package solver implements a bounded, exhaustive AND/OR search for a
// forced win in the current position: if the side to move has a strategy
// that wins regardless of the opponent's replies, GetMustWinMove returns
// one such first move.
package solver

import (
	"context"
	"sync/atomic"

	"github.com/katalite/go5x5/board"
)

// MaxExpansions caps the number of nodes ever constructed in one call,
// matching the original engine's MAX_COUNT bound.
const MaxExpansions = 500_000

// MinMoveCount is the move count below which the search refuses to run:
// at that depth the tree is too large to be worth exploring exhaustively.
const MinMoveCount = 14

// Solver runs one bounded exhaustive search at a time. It is not
// reentrant: concurrent calls to GetMustWinMove on the same Solver race
// on the shared atomics by design, mirroring the static-atomics layout of
// the original engine's Node class, where all trees in a process share
// one finished/count pair.
type Solver struct {
	finished atomic.Bool
	count    atomic.Int64
}

// New returns a Solver ready for its first search.
func New() *Solver {
	return &Solver{}
}

// Stop requests best-effort cancellation of any search in progress, or
// preempts the next call to GetMustWinMove entirely if called first.
// Unlike the original engine, which unconditionally clears finished at
// the start of every getMustWinMove call (making a prior stop() a no-op),
// this Solver never clears finished once it is set — so that calling Stop
// before GetMustWinMove reliably yields (Pass, false) rather than silently
// running anyway, and a stopped Solver does not search again.
func (s *Solver) Stop() {
	s.finished.Store(true)
}

// GetMustWinMove searches for a move that forces a win for state's side
// to move, trying Pass first and then every legal placement in row-major
// order, matching the original's Pass-first child ordering. It returns
// (Pass, false) if state has fewer than MinMoveCount moves played, if the
// search was stopped before or during the run, if the node cap was
// reached before a verdict was found, or if no move forces a win.
func (s *Solver) GetMustWinMove(ctx context.Context, state board.GameState) (board.Point, bool) {
	if state.MoveCount < MinMoveCount {
		return board.Pass, false
	}
	// Unlike the original engine, which unconditionally clears finished
	// at the start of every call, a Solver that was already stopped (or
	// that already hit its node cap) stays stopped: a fresh Solver is
	// needed to search again. This is what makes Stop effective when
	// called before GetMustWinMove, not just during one.
	if s.finished.Load() {
		return board.Pass, false
	}
	s.count.Store(0)

	mover := state.ToMove
	root := s.populate(ctx, state)
	if root == nil || root.winner != mover {
		return board.Pass, false
	}
	for _, child := range root.children {
		if child.winner == mover {
			return child.move, true
		}
	}
	return board.Pass, false
}

type solverNode struct {
	move     board.Point
	winner   board.Player
	hasValue bool
	children []*solverNode
}

// populate recursively expands state into a solverNode tree, short
// circuiting as soon as a child's winner matches the side to move at the
// current node — a single winning reply is all the parent needs. Returns
// nil if the node budget was exhausted or cancellation was observed
// before this node could be evaluated.
func (s *Solver) populate(ctx context.Context, state board.GameState) *solverNode {
	if s.finished.Load() {
		return nil
	}
	select {
	case <-ctx.Done():
		s.finished.Store(true)
		return nil
	default:
	}
	if s.count.Add(1) > MaxExpansions {
		s.finished.Store(true)
		return nil
	}

	n := &solverNode{move: board.Pass}
	if state.Terminal {
		n.winner = state.JudgeWinner()
		n.hasValue = true
		return n
	}

	mover := state.ToMove
	moves := state.PossiblePlacements()
	actions := make([]board.Point, 0, len(moves)+1)
	actions = append(actions, board.Pass)
	actions = append(actions, moves...)

	for _, a := range actions {
		next := state.Clone()
		next.Move(a)
		child := s.populate(ctx, next)
		if child == nil {
			return nil
		}
		child.move = a
		n.children = append(n.children, child)
		if child.winner == mover && child.hasValue {
			n.winner = mover
			n.hasValue = true
			return n
		}
	}

	n.winner = mover.Opponent()
	n.hasValue = true
	return n
}
