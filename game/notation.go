package game

import "fmt"

// Notation returns the 9-character cell string in index order, e.g.
// "XX.OO...." for X on 0-1 and O on 3-4.
func (g *Grid) Notation() string {
	var b [9]byte
	for i, c := range g.cells {
		b[i] = Symbols[c]
	}
	return string(b[:])
}

// FromNotation parses a 9-character cell string produced by Notation.
// It validates symbols and length only; mark counts are not checked, matching
// the permissive constructor.
func FromNotation(s string) (*Grid, error) {
	if len(s) != 9 {
		return nil, fmt.Errorf("notation must be 9 cells, got %d", len(s))
	}
	var cells [9]Mark
	for i := 0; i < 9; i++ {
		m, err := ParseMark(s[i])
		if err != nil {
			return nil, err
		}
		cells[i] = m
	}
	return FromCells(cells), nil
}
