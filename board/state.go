package board

// MaxMoves is the move count at which a game is forced to terminal
// regardless of passes, 5*5-1 per the spec.
const MaxMoves = Size*Size - 1

// Komi is the fixed compensation added to White's score. Non-integer, so
// area scoring never ties.
const Komi = 2.5

// GameState is the full, value-typed position: current board, the board as
// it stood before the most recently applied move (for ko), side to move,
// move count, and the terminal flag. GameState is cheap to copy by value
// except for its group index, which Clone deep-copies; the zero value is
// not a valid game — use NewGame.
type GameState struct {
	Board     Board
	Previous  Board
	ToMove    Player
	MoveCount int
	Terminal  bool

	groups   groupIndex
	lastPass bool
}

// NewGame returns a fresh 5x5 position, Black to move, empty board.
func NewGame() GameState {
	return GameState{
		ToMove: Black,
		groups: newGroupIndex(),
	}
}

// Clone returns an independent copy; mutating the result never affects s.
func (s GameState) Clone() GameState {
	s.groups = s.groups.clone()
	return s
}

// LibertyCount returns the liberty count of the group at p, or 0 if p is
// empty.
func (s *GameState) LibertyCount(p Point) int {
	return s.groups.libertyCount(p.Idx())
}

// GroupSize returns the number of stones in the group at p, or 0 if p is
// empty.
func (s *GameState) GroupSize(p Point) int {
	return s.groups.groupSize(p.Idx())
}

// PlaceStone unconditionally places stone at p, updating the group index.
// It returns false iff p is already occupied or stone is Empty. Used
// internally by Move and by callers importing an external board snapshot.
func (s *GameState) PlaceStone(p Point, stone Stone) bool {
	idx := p.Idx()
	if stone == Empty || s.Board[idx] != Empty {
		return false
	}
	s.Board[idx] = stone
	s.groups.addStone(&s.Board, idx, stone)
	return true
}

// RemoveNeighborGroups deletes every opposite-color neighbor group of p
// that has zero liberties after a stone of the given color was placed
// there.
func (s *GameState) RemoveNeighborGroups(p Point, stone Stone) {
	s.groups.removeNeighborGroups(&s.Board, p.Idx(), stone)
}

// IsLegal reports whether placing stone at p is a legal move for the
// current position. Rather than the single-neighbor shortcut of the
// original C++ isLegal (which inspects only the first neighbor satisfying
// a positive condition), this plays the move out on a scratch copy and
// checks the real postconditions: the placed stone's group must survive
// with at least one liberty after captures, and the resulting board must
// not reproduce Previous. That second check is exactly positional ko
// restricted to the single immediately-prior position, and it naturally
// only ever fires for a single-stone recapture: capturing a group of two
// or more stones changes more than one point, so the resulting board can
// never equal a position that differs from the pre-capture board by one
// stone.
func (s *GameState) IsLegal(p Point, stone Stone) bool {
	if stone == Empty || !p.OnBoard() {
		return false
	}
	idx := p.Idx()
	if s.Board[idx] != Empty {
		return false
	}

	trialBoard := s.Board
	trialBoard[idx] = stone
	trialGroups := s.groups.clone()
	trialGroups.addStone(&trialBoard, idx, stone)
	trialGroups.removeNeighborGroups(&trialBoard, idx, stone)

	if trialGroups.libertyCount(idx) == 0 {
		return false // suicide, including a captured-but-still-surrounded group
	}
	if trialBoard == s.Previous {
		return false // positional ko
	}
	return true
}

// PossiblePlacements returns every legal non-pass move for the side to
// move, in row-major order. Pass is never included; callers append it
// separately.
func (s *GameState) PossiblePlacements() []Point {
	var pts []Point
	for idx := 0; idx < NumPoints; idx++ {
		p := PointFromIdx(idx)
		if s.IsLegal(p, s.ToMove) {
			pts = append(pts, p)
		}
	}
	return pts
}

// Move applies action (Pass or a legal point) for the side to move. It
// fails (returns false, state unchanged) if the game is already terminal,
// or the action is a non-pass illegal move.
func (s *GameState) Move(action Point) bool {
	if s.Terminal {
		return false
	}
	if !action.IsPass() && !s.IsLegal(action, s.ToMove) {
		return false
	}

	s.Previous = s.Board
	wasPass := s.lastPass

	if !action.IsPass() {
		s.PlaceStone(action, s.ToMove)
		s.RemoveNeighborGroups(action, s.ToMove)
	}

	s.MoveCount++
	isPass := action.IsPass()

	if isPass && wasPass && s.MoveCount >= 2 {
		s.Terminal = true
	}
	if s.MoveCount >= MaxMoves {
		s.Terminal = true
	}

	s.lastPass = isPass
	s.ToMove = s.ToMove.Opponent()
	return true
}

// JudgeWinner scores the position by area count: black stones on the board
// versus white stones plus Komi. Ties are impossible.
func (s *GameState) JudgeWinner() Player {
	var black, white float64
	for _, st := range s.Board {
		switch st {
		case Black:
			black++
		case White:
			white++
		}
	}
	white += Komi
	if black > white {
		return Black
	}
	return White
}
