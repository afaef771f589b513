package board

import "strings"

// Board is a flat row-major grid of stones. It is a comparable value type
// (plain array), so two boards can be compared with == — used directly by
// the positional-ko check.
type Board [NumPoints]Stone

// Get returns the stone at p.
func (b Board) Get(p Point) Stone {
	return b[p.Idx()]
}

// Set places stone at p unconditionally.
func (b *Board) Set(p Point, s Stone) {
	b[p.Idx()] = s
}

// String renders the board as a small ASCII grid, 'X' for black, 'O' for
// white, '.' for empty, matching the orientation of the original C++
// showBoard debug dump.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch b.Get(Point{row, col}) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
