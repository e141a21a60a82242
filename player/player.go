// Package player seats the two sides of a game: humans reading from a prompt
// and computers backed by the solver.
package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/solver"
)

// Player produces the next move for the side to move on g, as a cell index
// that is in range and empty. Search metrics are zero for seats that do not
// search.
type Player interface {
	NextMove(g *game.Grid) (int, metrics.SearchMetric, error)
}

// Human prompts for numpad moves (1-9) and keeps prompting until it reads a
// playable cell. It shares its scanner with the surrounding menu loop so no
// input is lost between prompts.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in *bufio.Scanner, out io.Writer) *Human {
	if in == nil {
		panic("human player needs an input scanner")
	}
	if out == nil {
		out = io.Discard
	}
	return &Human{in: in, out: out}
}

func (h *Human) NextMove(g *game.Grid) (int, metrics.SearchMetric, error) {
	for {
		fmt.Fprintf(h.out, "Player '%s', enter your move (1-9): ", g.Mover())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return 0, metrics.SearchMetric{}, fmt.Errorf("reading move: %w", err)
			}
			return 0, metrics.SearchMetric{}, io.EOF
		}
		n, err := strconv.Atoi(strings.TrimSpace(h.in.Text()))
		if err != nil || n < 1 || n > 9 || g.Cell(n-1) != game.Empty {
			fmt.Fprintln(h.out, "Invalid move! Try again.")
			continue
		}
		return n - 1, metrics.SearchMetric{}, nil
	}
}

// Computer plays the solver's best move and announces it in numpad form. One
// Computer can occupy both seats of a game since the side to move comes from
// the grid.
type Computer struct {
	solver *solver.Solver
	out    io.Writer
}

func NewComputer(s *solver.Solver, out io.Writer) *Computer {
	if s == nil {
		panic("computer player needs a solver")
	}
	if out == nil {
		out = io.Discard
	}
	return &Computer{solver: s, out: out}
}

func (c *Computer) NextMove(g *game.Grid) (int, metrics.SearchMetric, error) {
	rec, metric := c.solver.Evaluate(g)
	log.Debug().Msgf("position %s evaluated: value %d, best move %d", g.Notation(), rec.Value, rec.Move+1)
	fmt.Fprintf(c.out, "Computer (Player '%s') played %d!\n", g.Mover(), rec.Move+1)
	return rec.Move, metric, nil
}
