// Package go5x5 is the top-level entry point bundling the board, MCTS,
// and solver packages behind one configuration type and a small set of
// move-selection modes, the way the teacher's top-level agogo.go bundles
// game, mcts, and dualnet behind AZ and Config.
package go5x5

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
	"github.com/katalite/go5x5/mcts"
	"github.com/katalite/go5x5/rng"
	"github.com/katalite/go5x5/search"
)

// ErrGameOver is returned when a move is requested on a terminal
// position.
var ErrGameOver = errors.New("go5x5: game is already over")

// ErrInvalidConfig is returned when Config fields fail validation.
var ErrInvalidConfig = errors.New("go5x5: invalid configuration")

// Mode selects which search driver Move uses.
type Mode int

const (
	// ModeFixed runs the full-iteration MCTS search.
	ModeFixed Mode = iota
	// ModeFast runs the reduced-iteration MCTS search.
	ModeFast
	// ModeTimeLimited races MCTS against the exhaustive solver for a
	// bounded wall-clock budget.
	ModeTimeLimited
)

// Config is the top-level, user-facing configuration: which inference
// backend to use, how to seed randomness, and how long a time-limited
// search is allowed to run.
type Config struct {
	Engine      inference.Engine
	Seed        uint64
	ForceSelect bool
	TimeLimit   time.Duration
}

// Validate checks Config for obviously unusable values.
func (c Config) Validate() error {
	if c.Engine == nil {
		return errors.Wrap(ErrInvalidConfig, "engine must not be nil")
	}
	if c.TimeLimit < 0 {
		return errors.Wrap(ErrInvalidConfig, "time limit must not be negative")
	}
	return nil
}

// Engine is the assembled top-level API: a configured driver plus the
// random source it owns.
type Engine struct {
	driver *search.Driver
	cfg    Config
}

// New validates cfg and returns a ready Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	source := rng.New(cfg.Seed, inference.ActionSpace, mcts.DirichletAlpha)
	d := search.NewDriver(cfg.Engine, source)
	d.ForceSelect = cfg.ForceSelect
	return &Engine{driver: d, cfg: cfg}, nil
}

// Move selects a move for state according to mode.
func (e *Engine) Move(ctx context.Context, state board.GameState, mode Mode) (board.Point, error) {
	if state.Terminal {
		return board.Pass, ErrGameOver
	}
	switch mode {
	case ModeFast:
		return e.driver.FastMove(state)
	case ModeTimeLimited:
		limit := e.cfg.TimeLimit
		if limit <= 0 {
			limit = time.Second
		}
		return e.driver.TimeLimitedMove(ctx, state, limit)
	default:
		return e.driver.Move(state)
	}
}

// RecordedMove runs a self-play-style search with root exploration noise
// and returns the chosen move, its feature tensor, and the improved
// policy target.
func (e *Engine) RecordedMove(state board.GameState) (board.Point, []float32, [mcts.PassAction + 1]float32, error) {
	if state.Terminal {
		return board.Pass, nil, [mcts.PassAction + 1]float32{}, ErrGameOver
	}
	return e.driver.RecordedMove(state)
}

// EvaluateMove runs the time-limited search and additionally returns an
// estimated black-win rate for the chosen move, for callers (such as a
// GTP front-end's p-bwr query) that need a value estimate alongside the
// move itself.
func (e *Engine) EvaluateMove(ctx context.Context, state board.GameState) (board.Point, float32, error) {
	if state.Terminal {
		return board.Pass, 0, ErrGameOver
	}
	limit := e.cfg.TimeLimit
	if limit <= 0 {
		limit = time.Second
	}
	return e.driver.EvaluateMove(ctx, state, limit)
}
