// Package game models the 3x3 board: marks, the grid itself, move legality
// and terminal detection. Cells are indexed 0-8 row-major from the bottom-left:
//
//	-------
//	|6|7|8|
//	-------
//	|3|4|5|
//	-------
//	|0|1|2|
//	-------
package game

import (
	"fmt"

	"tictactoe/utils"
)

// Mark is the content of a single cell. The numeric values matter: the side
// to move is Mark(plies % 2), so X must be 0 and O must be 1.
type Mark uint8

const (
	X Mark = iota
	O
	Empty
)

// Symbols maps marks to their display characters, indexed by Mark value.
const Symbols = "XO."

func (m Mark) String() string {
	if int(m) >= len(Symbols) {
		return "?"
	}
	return string(Symbols[m])
}

// Other returns the opposing mark. Calling it on Empty is a programmer error.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	panic("no opponent for the empty mark")
}

// ParseMark converts a symbol byte back into a Mark.
func ParseMark(b byte) (Mark, error) {
	idx := utils.FindIndex([]byte(Symbols), b)
	if idx < 0 {
		return Empty, fmt.Errorf("invalid mark symbol %q", string(b))
	}
	return Mark(idx), nil
}

// Outcome is the terminal status of a position.
type Outcome uint8

const (
	Open Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X"
	case OWins:
		return "O"
	case Draw:
		return "draw"
	}
	return "open"
}

// lines holds the eight winning alignments: both diagonals, then rows bottom
// to top, then columns left to right.
var lines = [8][3]int{
	{0, 4, 8},
	{2, 4, 6},
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
}
