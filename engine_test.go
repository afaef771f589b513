package go5x5

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalite/go5x5/board"
	"github.com/katalite/go5x5/inference"
)

func TestNewRejectsNilEngine(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewRejectsNegativeTimeLimit(t *testing.T) {
	_, err := New(Config{Engine: inference.NullEngine{}, TimeLimit: -time.Second})
	assert.Error(t, err)
}

func TestMoveOnFreshGame(t *testing.T) {
	e, err := New(Config{Engine: inference.NullEngine{}, Seed: 1})
	require.NoError(t, err)

	p, err := e.Move(context.Background(), board.NewGame(), ModeFast)
	require.NoError(t, err)
	if !p.IsPass() {
		s := board.NewGame()
		assert.True(t, s.IsLegal(p, s.ToMove))
	}
}

func TestMoveOnTerminalGameFails(t *testing.T) {
	e, err := New(Config{Engine: inference.NullEngine{}, Seed: 1})
	require.NoError(t, err)

	s := board.NewGame()
	require.True(t, s.Move(board.Pass))
	require.True(t, s.Move(board.Pass))
	require.True(t, s.Terminal)

	_, err = e.Move(context.Background(), s, ModeFixed)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestTimeLimitedModeDefaultsWhenUnset(t *testing.T) {
	e, err := New(Config{Engine: inference.NullEngine{}, Seed: 2})
	require.NoError(t, err)

	start := time.Now()
	_, err = e.Move(context.Background(), board.NewGame(), ModeTimeLimited)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestEvaluateMoveReturnsWinRateInUnitRange(t *testing.T) {
	e, err := New(Config{Engine: inference.NullEngine{}, Seed: 3, TimeLimit: 50 * time.Millisecond})
	require.NoError(t, err)

	_, bwr, err := e.EvaluateMove(context.Background(), board.NewGame())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bwr, float32(0))
	assert.LessOrEqual(t, bwr, float32(1))
}

func TestEvaluateMoveOnTerminalGameFails(t *testing.T) {
	e, err := New(Config{Engine: inference.NullEngine{}, Seed: 3})
	require.NoError(t, err)

	s := board.NewGame()
	require.True(t, s.Move(board.Pass))
	require.True(t, s.Move(board.Pass))

	_, _, err = e.EvaluateMove(context.Background(), s)
	assert.ErrorIs(t, err, ErrGameOver)
}
