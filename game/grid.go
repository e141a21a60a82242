package game

import (
	"fmt"
	"strings"
)

// Key is the full cell snapshot of a position, usable as a map key. Two
// positions compare equal exactly when every cell matches.
type Key [9]Mark

// Grid is a mutable position. Play and Undo mutate it in place; nested
// searches rely on strict play/undo pairing to restore it. A Grid must not
// be shared across goroutines without external synchronization.
type Grid struct {
	cells [9]Mark
	plies int
}

// New returns an empty grid with X to move.
func New() *Grid {
	g := &Grid{}
	g.Clear()
	return g
}

// FromCells builds a grid from a full cell snapshot, deriving the ply count
// from the number of occupied cells.
func FromCells(cells [9]Mark) *Grid {
	g := &Grid{cells: cells}
	for _, c := range cells {
		if c != Empty {
			g.plies++
		}
	}
	return g
}

// Clear resets every cell to Empty and the ply count to zero.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.plies = 0
}

func checkRange(cell int) {
	if cell < 0 || cell > 8 {
		panic(fmt.Sprintf("cell %d out of range [0,8]", cell))
	}
}

// Play puts the mover's mark on cell if it is empty and reports whether it
// did. The mover is determined by ply parity. An occupied cell leaves the
// grid unchanged. Cell must be in [0,8]; range checking is the caller's duty
// and violations panic.
func (g *Grid) Play(cell int) bool {
	checkRange(cell)
	if g.cells[cell] != Empty {
		return false
	}
	g.cells[cell] = Mark(g.plies % 2)
	g.plies++
	return true
}

// Undo frees cell if it is occupied and reports whether it did. It must
// revert the most recent Play on that cell for search state to stay
// consistent. Cell must be in [0,8]; violations panic.
func (g *Grid) Undo(cell int) bool {
	checkRange(cell)
	if g.cells[cell] == Empty {
		return false
	}
	g.cells[cell] = Empty
	g.plies--
	return true
}

// HasWon reports whether side occupies all three cells of some line.
func (g *Grid) HasWon(side Mark) bool {
	for _, line := range lines {
		if g.cells[line[0]] == side && g.cells[line[1]] == side && g.cells[line[2]] == side {
			return true
		}
	}
	return false
}

// Outcome classifies the position: a win for either side, a 9-ply draw, or
// still open. A position where both sides have a line cannot arise through
// legal play and is not handled.
func (g *Grid) Outcome() Outcome {
	if g.HasWon(X) {
		return XWins
	}
	if g.HasWon(O) {
		return OWins
	}
	if g.plies == 9 {
		return Draw
	}
	return Open
}

// Plies returns the number of marks on the board.
func (g *Grid) Plies() int {
	return g.plies
}

// Mover returns the side to move.
func (g *Grid) Mover() Mark {
	return Mark(g.plies % 2)
}

// Cell returns the mark at cell. Cell must be in [0,8]; violations panic.
func (g *Grid) Cell(cell int) Mark {
	checkRange(cell)
	return g.cells[cell]
}

// Key returns the position's snapshot key.
func (g *Grid) Key() Key {
	return g.cells
}

// String renders the grid top row first, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 2; row >= 0; row-- {
		for col := 0; col < 3; col++ {
			b.WriteByte(Symbols[g.cells[3*row+col]])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
