package game

import (
	"strings"

	"github.com/muesli/termenv"
)

// Render draws the grid like String but with the marks styled for the given
// output: X and O in contrasting colors, empty cells faint. On outputs
// without color support it degrades to the plain form.
func Render(out *termenv.Output, g *Grid) string {
	var b strings.Builder
	for row := 2; row >= 0; row-- {
		for col := 0; col < 3; col++ {
			b.WriteString(styleMark(out, g.cells[3*row+col]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func styleMark(out *termenv.Output, m Mark) string {
	s := out.String(m.String())
	switch m {
	case X:
		s = s.Foreground(out.Color("9")).Bold()
	case O:
		s = s.Foreground(out.Color("12")).Bold()
	default:
		s = s.Faint()
	}
	return s.String()
}
