package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleStoneCapture(t *testing.T) {
	s := NewGame()
	require.True(t, s.PlaceStone(Point{0, 1}, White))
	require.Equal(t, 3, s.LibertyCount(Point{0, 1}))

	for _, p := range []Point{{1, 1}, {0, 0}, {0, 2}} {
		require.True(t, s.IsLegal(p, Black))
		require.True(t, s.PlaceStone(p, Black))
		s.RemoveNeighborGroups(p, Black)
	}
	assert.Equal(t, Empty, s.Board.Get(Point{0, 1}))
	assert.Equal(t, 0, s.GroupSize(Point{0, 1}))
}

func TestSuicideIsIllegal(t *testing.T) {
	s := NewGame()
	for _, p := range []Point{{0, 1}, {1, 0}} {
		require.True(t, s.PlaceStone(p, Black))
	}
	assert.False(t, s.IsLegal(Point{0, 0}, White))
}

func TestSuicideLegalWhenItCaptures(t *testing.T) {
	s := NewGame()
	require.True(t, s.PlaceStone(Point{0, 1}, White))
	require.True(t, s.PlaceStone(Point{0, 2}, Black))
	require.True(t, s.PlaceStone(Point{1, 1}, Black))
	require.True(t, s.PlaceStone(Point{1, 0}, White))
	assert.Equal(t, 1, s.LibertyCount(Point{0, 1}))
	assert.True(t, s.IsLegal(Point{0, 0}, Black))
}

// TestPositionalKoCycle works a full single-stone ko through Move: white
// pins a lone black stone at (1,1) down to one liberty, captures it,
// black's immediate recapture is rejected because it would reproduce the
// board as it stood right before white's capturing move, and the same
// recapture becomes legal again once an intervening pair of moves has
// changed Previous.
func TestPositionalKoCycle(t *testing.T) {
	s := NewGame()
	playBlack := func(p Point) {
		s.ToMove = Black
		require.True(t, s.Move(p))
	}
	playWhite := func(p Point) {
		s.ToMove = White
		require.True(t, s.Move(p))
	}

	playWhite(Point{0, 1})
	playBlack(Point{0, 2})
	playWhite(Point{1, 0})
	playBlack(Point{1, 3})
	playWhite(Point{2, 1})
	playBlack(Point{2, 2})
	playWhite(Point{4, 4}) // elsewhere, so it's black's turn to place the ko stone
	playBlack(Point{1, 1}) // lone black stone, pinned to one liberty at (1,2)
	require.Equal(t, 1, s.LibertyCount(Point{1, 1}))

	playWhite(Point{1, 2}) // captures black (1,1); white's own group now has 1 liberty
	assert.Equal(t, Empty, s.Board.Get(Point{1, 1}))
	assert.Equal(t, 1, s.LibertyCount(Point{1, 2}))

	assert.False(t, s.IsLegal(Point{1, 1}, Black), "immediate recapture must be rejected by ko")

	playBlack(Point{4, 3})
	playWhite(Point{4, 2})

	assert.True(t, s.IsLegal(Point{1, 1}, Black), "recapture is legal once Previous has moved on")
}

func TestDoublePassTerminates(t *testing.T) {
	s := NewGame()
	require.True(t, s.Move(Pass))
	assert.False(t, s.Terminal)
	require.True(t, s.Move(Pass))
	assert.True(t, s.Terminal)
}

func TestMoveCountCapTerminates(t *testing.T) {
	s := NewGame()
	require.True(t, s.Move(Point{0, 0})) // break lastPass so the next move isn't a double pass
	s.MoveCount = MaxMoves - 1
	require.True(t, s.Move(Pass))
	assert.True(t, s.Terminal)
}

func TestMoveRejectedWhenTerminal(t *testing.T) {
	s := NewGame()
	require.True(t, s.Move(Pass))
	require.True(t, s.Move(Pass))
	require.True(t, s.Terminal)
	assert.False(t, s.Move(Pass))
}

func TestJudgeWinnerAppliesKomi(t *testing.T) {
	s := NewGame()
	assert.Equal(t, White, s.JudgeWinner()) // empty board: 0 vs 2.5 komi

	require.True(t, s.PlaceStone(Point{0, 0}, Black))
	require.True(t, s.PlaceStone(Point{0, 1}, Black))
	require.True(t, s.PlaceStone(Point{0, 2}, Black))
	assert.Equal(t, Black, s.JudgeWinner()) // 3 vs 2.5
}

func TestPossiblePlacementsExcludesOccupied(t *testing.T) {
	s := NewGame()
	require.True(t, s.PlaceStone(Point{0, 0}, Black))
	pts := s.PossiblePlacements()
	assert.Len(t, pts, NumPoints-1)
	for _, p := range pts {
		assert.NotEqual(t, Point{0, 0}, p)
	}
}

func TestPointStringAndIdxRoundTrip(t *testing.T) {
	for idx := 0; idx < NumPoints; idx++ {
		p := PointFromIdx(idx)
		assert.Equal(t, idx, p.Idx())
	}
	assert.Equal(t, "pass", Pass.String())
	assert.Equal(t, "A1", Point{0, 0}.String())
}
