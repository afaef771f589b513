package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
	"github.com/katalite/go5x5/mcts"
	"github.com/katalite/go5x5/rng"
)

func newDriver() *Driver {
	return NewDriver(inference.NullEngine{}, rng.New(11, inference.ActionSpace, mcts.DirichletAlpha))
}

func TestMoveReturnsALegalOrPassAction(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	p, err := d.Move(state)
	require.NoError(t, err)
	if !p.IsPass() {
		assert.True(t, state.IsLegal(p, state.ToMove))
	}
}

func TestFastMoveReturnsALegalOrPassAction(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	p, err := d.FastMove(state)
	require.NoError(t, err)
	if !p.IsPass() {
		assert.True(t, state.IsLegal(p, state.ToMove))
	}
}

func TestRecordedMoveReturnsNormalizedPolicy(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	_, features, shares, err := d.RecordedMove(state)
	require.NoError(t, err)
	assert.Len(t, features, inference.Channels*board.NumPoints)

	var sum float32
	for _, v := range shares {
		sum += v
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-3)
}

func TestTimeLimitedMoveRespectsDeadline(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	start := time.Now()
	p, err := d.TimeLimitedMove(context.Background(), state, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	if !p.IsPass() {
		assert.True(t, state.IsLegal(p, state.ToMove))
	}
}

func TestTimeLimitedMoveUsesSolverForcedWin(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	require.True(t, state.PlaceStone(board.Point{0, 0}, board.Black))
	require.True(t, state.PlaceStone(board.Point{0, 1}, board.Black))
	state.MoveCount = board.MaxMoves - 1
	state.ToMove = board.Black

	p, err := d.TimeLimitedMove(context.Background(), state, 200*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, p.IsPass())

	played := state.Clone()
	require.True(t, played.Move(p))
	assert.Equal(t, board.Black, played.JudgeWinner())
}

func TestEvaluateMoveReportsWinRateInUnitRange(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	_, bwr, err := d.EvaluateMove(context.Background(), state, 50*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bwr, float32(0))
	assert.LessOrEqual(t, bwr, float32(1))
}

func TestEvaluateMoveReportsCertainWinOnSolverForcedWin(t *testing.T) {
	d := newDriver()
	state := board.NewGame()
	require.True(t, state.PlaceStone(board.Point{0, 0}, board.Black))
	require.True(t, state.PlaceStone(board.Point{0, 1}, board.Black))
	state.MoveCount = board.MaxMoves - 1
	state.ToMove = board.Black

	p, bwr, err := d.EvaluateMove(context.Background(), state, 200*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, p.IsPass())
	assert.Equal(t, float32(1.0), bwr)
}
