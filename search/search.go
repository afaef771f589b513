// Package search provides the top-level move-selection drivers that
// combine an MCTS search with the exhaustive solver: a fixed-iteration
// driver, a fast low-iteration variant, one that also records the
// improved policy target, and a wall-clock-bounded driver that races the
// solver against the tree search the way the original engine's
// TimeLimitMCTSAI does.
package search

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
	"github.com/katalite/go5x5/mcts"
	"github.com/katalite/go5x5/rng"
	"github.com/katalite/go5x5/solver"
)

// DefaultSteps is the default MCTS iteration budget for a fixed-step
// search (constant.h: DEFAULT_ITERATION).
const DefaultSteps = 400

// FastDivisor shrinks DefaultSteps for the low-latency variant.
const FastDivisor = 5

// MaxTimeLimitedSteps upper-bounds a time-limited search's iteration
// count even if the wall clock hasn't expired yet, guarding against an
// engine so cheap that the loop would otherwise spin indefinitely.
const MaxTimeLimitedSteps = 1_000_000

// ErrNoLegalMove is returned when a search on a terminal position (or one
// with no children at all) cannot propose a move.
var ErrNoLegalMove = errors.New("search: no legal move available")

// Driver bundles the inference engine and RNG shared across calls.
type Driver struct {
	Engine      inference.Engine
	RNG         *rng.Source
	ForceSelect bool
}

// NewDriver returns a Driver over engine, using source for both rollout
// sampling and any root noise the caller enables.
func NewDriver(engine inference.Engine, source *rng.Source) *Driver {
	return &Driver{Engine: engine, RNG: source}
}

func (d *Driver) config(addRootNoise bool) mcts.Config {
	return mcts.Config{
		Engine:       d.Engine,
		RNG:          d.RNG,
		CPUCT:        mcts.CPUCT,
		ForceSelectK: mcts.ForceSelectK,
		ForceSelect:  d.ForceSelect,
		AddRootNoise: addRootNoise,
	}
}

// timeLimitedConfig is config with ForceSelect always on, independent of
// the Driver's own ForceSelect setting: a time-limited search must keep
// spreading visits across root children for as long as it runs, since
// there is no fixed iteration budget to rely on for coverage.
func (d *Driver) timeLimitedConfig() mcts.Config {
	cfg := d.config(false)
	cfg.ForceSelect = true
	return cfg
}

func bestChildMove(tree *mcts.Tree) (board.Point, error) {
	p, node, _ := tree.BestMove()
	if node == nil {
		return board.Pass, ErrNoLegalMove
	}
	return p, nil
}

// Move runs DefaultSteps MCTS iterations and returns the most-visited
// root move (MCTSAI::move).
func (d *Driver) Move(state board.GameState) (board.Point, error) {
	return d.fixedSteps(state, DefaultSteps)
}

// FastMove runs DefaultSteps/FastDivisor iterations, for latency-sensitive
// callers such as interactive play (MCTSAI::fastMove).
func (d *Driver) FastMove(state board.GameState) (board.Point, error) {
	return d.fixedSteps(state, DefaultSteps/FastDivisor)
}

func (d *Driver) fixedSteps(state board.GameState, steps int) (board.Point, error) {
	tree, err := mcts.New(d.config(false), state)
	if err != nil {
		return board.Pass, errors.Wrap(err, "search: building tree")
	}
	for i := 0; i < steps; i++ {
		if err := tree.Iterate(); err != nil {
			return board.Pass, errors.Wrap(err, "search: iterating")
		}
	}
	return bestChildMove(tree)
}

// RecordedMove runs DefaultSteps iterations with root noise enabled for
// self-play exploration and returns the chosen move alongside the input
// feature tensor and the improved policy target, suitable for a training
// example (MCTSAI::recordedMove).
func (d *Driver) RecordedMove(state board.GameState) (board.Point, []float32, [mcts.PassAction + 1]float32, error) {
	tree, err := mcts.New(d.config(true), state)
	if err != nil {
		return board.Pass, nil, [mcts.PassAction + 1]float32{}, errors.Wrap(err, "search: building tree")
	}
	for i := 0; i < DefaultSteps; i++ {
		if err := tree.Iterate(); err != nil {
			return board.Pass, nil, [mcts.PassAction + 1]float32{}, errors.Wrap(err, "search: iterating")
		}
	}

	ft := inference.FeatureTensor(&state)
	backing, ok := ft.Data().([]float32)
	if !ok {
		return board.Pass, nil, [mcts.PassAction + 1]float32{}, errors.New("search: feature tensor backing is not []float32")
	}

	move, err := bestChildMove(tree)
	_, _, shares := tree.BestMove()
	return move, backing, shares, err
}

// TimeLimitedMove runs MCTS for up to limit wall-clock time while an
// exhaustive solver races in the background; if the solver finds a
// forced win before the clock or the MCTS step cap expires, that move
// wins outright (TimeLimitMCTSAI::move / moveAsync).
func (d *Driver) TimeLimitedMove(ctx context.Context, state board.GameState, limit time.Duration) (board.Point, error) {
	move, _, err := d.evaluateTimeLimited(ctx, state, limit)
	return move, err
}

// EvaluateMove is TimeLimitedMove's secondary variant: it runs the same
// race between MCTS and the exhaustive solver, but additionally returns
// an estimated black-win rate for the chosen move (TimeLimitMCTSAI's
// evaMove) — the chosen child's Wᵦ/N, or 1.0/0.0 when the solver
// supplied the move and the side to move is Black/White respectively.
func (d *Driver) EvaluateMove(ctx context.Context, state board.GameState, limit time.Duration) (board.Point, float32, error) {
	return d.evaluateTimeLimited(ctx, state, limit)
}

func (d *Driver) evaluateTimeLimited(ctx context.Context, state board.GameState, limit time.Duration) (board.Point, float32, error) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	sv := solver.New()
	solverDone := make(chan struct{})
	var solverMove board.Point
	var solverOK bool
	go func() {
		defer close(solverDone)
		solverMove, solverOK = sv.GetMustWinMove(ctx, state.Clone())
	}()

	tree, err := mcts.New(d.timeLimitedConfig(), state)
	if err != nil {
		sv.Stop()
		<-solverDone
		return board.Pass, 0, errors.Wrap(err, "search: building tree")
	}

	deadline := time.Now().Add(limit)
	for i := 0; i < MaxTimeLimitedSteps; i++ {
		if err := tree.Iterate(); err != nil {
			sv.Stop()
			<-solverDone
			return board.Pass, 0, errors.Wrap(err, "search: iterating")
		}
		if time.Now().After(deadline) {
			break
		}
	}

	sv.Stop()
	<-solverDone
	if solverOK {
		if state.ToMove == board.Black {
			return solverMove, 1.0, nil
		}
		return solverMove, 0.0, nil
	}

	p, node, _ := tree.BestMove()
	if node == nil {
		return board.Pass, 0, ErrNoLegalMove
	}
	var bwr float32
	if node.Visits > 0 {
		bwr = node.BlackWins / float32(node.Visits)
	}
	return p, bwr, nil
}
