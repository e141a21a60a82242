package engine

import "tictactoe/experiments/metrics"

// Engine drives one game from its current position to a terminal one.
type Engine interface {
	// Run plays out the game and reports the outcome, the committed moves and
	// the per-move search metrics.
	Run() (metrics.GameMetric, []metrics.MoveMetric, error)
}
