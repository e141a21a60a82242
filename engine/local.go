package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
)

type Option func(e *Local)

// WithOutput redirects the board and the end-of-game banner, stdout by
// default.
func WithOutput(out io.Writer) Option {
	return func(e *Local) {
		if out != nil {
			e.out = out
		}
	}
}

// WithGrid starts the game from a given position instead of an empty board.
func WithGrid(g *game.Grid) Option {
	return func(e *Local) {
		if g != nil {
			e.Grid = g
		}
	}
}

// Local runs one game on one grid between two players indexed by mark. It
// validates every returned cell before committing it, so the grid only ever
// sees moves that honor its contract.
type Local struct {
	Grid    *game.Grid
	Players [2]player.Player
	out     io.Writer
	render  *termenv.Output
}

func NewLocal(x, o player.Player, options ...Option) *Local {
	if x == nil || o == nil {
		panic("both seats need a player")
	}
	e := &Local{
		Grid:    game.New(),
		Players: [2]player.Player{x, o},
		out:     os.Stdout,
	}
	for _, option := range options {
		option(e)
	}
	e.render = termenv.NewOutput(e.out)
	return e
}

// Run alternates seats until the position is terminal, printing the board
// after every committed move and the banner at the end.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	fmt.Fprintf(e.out, "\n%s", game.Render(e.render, e.Grid))
	log.Debug().Msgf("game started, player %s to move", e.Grid.Mover())

	for step := 1; e.Grid.Outcome() == game.Open && step <= meta.MAX_PLIES; step++ {
		mover := e.Grid.Mover()
		cell, searchMetric, err := e.Players[mover].NextMove(e.Grid)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %s: %w", mover, err)
		}
		if cell < 0 || cell > 8 {
			return gameMetric, moveMetrics, fmt.Errorf("player %s returned cell %d out of range", mover, cell)
		}
		if !e.Grid.Play(cell) {
			return gameMetric, moveMetrics, fmt.Errorf("player %s returned occupied cell %d", mover, cell)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mover,
			Move:         cell + 1,
			SearchMetric: searchMetric,
		})
		gameMetric.Moves = append(gameMetric.Moves, cell+1)

		fmt.Fprintf(e.out, "\n%s", game.Render(e.render, e.Grid))
		log.Debug().Msgf("step %d: player %s played %d", step, mover, cell+1)
	}

	outcome := e.Grid.Outcome()
	switch outcome {
	case game.XWins:
		fmt.Fprintf(e.out, "Player '%s' wins!\n", game.X)
	case game.OWins:
		fmt.Fprintf(e.out, "Player '%s' wins!\n", game.O)
	case game.Draw:
		fmt.Fprintln(e.out, "Draw game!")
	}

	gameMetric.Outcome = outcome
	gameMetric.Plies = e.Grid.Plies()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return gameMetric, moveMetrics, nil
}
