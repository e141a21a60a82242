// Package solver computes exact game-theoretic evaluations of positions by
// exhaustive minimax over the full game tree, memoized by position snapshot.
package solver

import (
	"time"

	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Record is the exact evaluation of a position. Value is +1 for a forced X
// win under perfect play, -1 for a forced O win, 0 for a forced draw. Move is
// the optimal cell for the side to move; for terminal positions it is 0 by
// convention and carries no meaning.
type Record struct {
	Value int
	Move  int
}

type Option func(s *Solver)

// Solver owns a memo table mapping position snapshots to Records. The table
// only grows, entries are never rewritten, and it lives as long as the Solver,
// so positions repeat across games for free. A Solver is not safe for
// concurrent use; callers sharing one must serialize Evaluate.
type Solver struct {
	table   map[game.Key]Record
	rng     *rand.Rand
	metrics metrics.Collector
}

// WithRand sets the randomness source used to break ties between equally good
// moves. Fixing the source makes evaluation fully deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithMetrics enables per-evaluation search metrics.
func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSolver(options ...Option) *Solver {
	s := &Solver{
		table:   make(map[game.Key]Record),
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Size returns the number of solved positions in the memo table.
func (s *Solver) Size() int {
	return len(s.table)
}

// Evaluate returns the Record for the grid's current configuration, plus the
// search metrics for this call if collection is enabled. The grid is mutated
// during the search but restored exactly before returning. The first
// evaluation of a position freezes its Record, tie-break choice included, for
// the Solver's lifetime.
func (s *Solver) Evaluate(g *game.Grid) (Record, metrics.SearchMetric) {
	s.metrics.Start()
	rec := s.evaluate(g)
	s.metrics.SetTableSize(len(s.table))
	return rec, s.metrics.Complete()
}

func (s *Solver) evaluate(g *game.Grid) Record {
	key := g.Key()
	if rec, ok := s.table[key]; ok {
		s.metrics.AddHit()
		return rec
	}

	for _, side := range []game.Mark{game.X, game.O} {
		if g.HasWon(side) {
			rec := Record{Value: 1 - 2*int(side)}
			s.table[key] = rec
			s.metrics.AddTerminal()
			return rec
		}
	}
	if g.Plies() == 9 {
		rec := Record{}
		s.table[key] = rec
		s.metrics.AddTerminal()
		return rec
	}

	// sgn folds max (X to move) and min (O to move) into one update rule:
	// val improves on best iff (val-best)*sgn > 0. The sentinel -sgn*2 lies
	// outside [-1,1], so the first candidate always replaces it.
	sgn := 1 - 2*(g.Plies()%2)
	best := Record{Value: -sgn * 2}
	for cell := 0; cell < 9; cell++ {
		if !g.Play(cell) {
			continue
		}
		val := s.evaluate(g).Value
		// A coin flip decides ties so the chosen move varies between solvers.
		if (val-best.Value)*sgn > 0 || (val == best.Value && s.rng.Float64() < 0.5) {
			best = Record{Value: val, Move: cell}
		}
		g.Undo(cell)
	}
	s.table[key] = best
	s.metrics.AddExpansion()
	return best
}
