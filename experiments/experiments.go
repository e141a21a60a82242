// Package experiments runs batches of solver self-play games and records the
// results under timestamped run directories.
package experiments

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/solver"
)

// Config parameterizes a self-play run.
type Config struct {
	Games      int    // number of games, meta.NUM_GAMES when zero
	Seed       uint64 // tie-break seed, time-based when zero
	FreshTable bool   // rebuild the solver between games instead of reusing the memo table
	OutRoot    string // record output root, "experiments" when empty
}

// Update streams one finished game to a live view.
type Update struct {
	Game      int
	Outcome   game.Outcome
	Moves     []int
	TableSize int
	Duration  time.Duration
}

// Summary aggregates a finished run.
type Summary struct {
	Games     int
	Draws     int
	XWins     int
	OWins     int
	TableSize int
	Duration  time.Duration
	OutDir    string
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games: %d draws, %d X wins, %d O wins, %d solved positions, %s",
		s.Games, s.Draws, s.XWins, s.OWins, s.TableSize, s.Duration)
}

// RunSelfPlay plays computer vs computer games and writes game and move
// records. Every game between two perfect players ends in a draw; the records
// are the evidence. When updates is non-nil one Update is sent per finished
// game; the caller owns the channel.
func RunSelfPlay(config Config, updates chan<- Update) (Summary, error) {
	games := config.Games
	if games <= 0 {
		games = meta.NUM_GAMES
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	outRoot := config.OutRoot
	if outRoot == "" {
		outRoot = "experiments"
	}

	log.Info().Msgf("starting self-play: %d games, seed %d, fresh table %t", games, seed, config.FreshTable)

	s := newSolver(seed)
	start := time.Now()
	summary := Summary{Games: games}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for i := 1; i <= games; i++ {
		if config.FreshTable && i > 1 {
			s = newSolver(seed + uint64(i-1))
		}
		computer := player.NewComputer(s, io.Discard)
		eng := engine.NewLocal(computer, computer, engine.WithOutput(io.Discard))

		gameMetric, moveMetrics, err := eng.Run()
		if err != nil {
			return summary, fmt.Errorf("self-play game %d: %w", i, err)
		}

		switch gameMetric.Outcome {
		case game.Draw:
			summary.Draws++
		case game.XWins:
			summary.XWins++
		case game.OWins:
			summary.OWins++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i,
			Seed:       seed,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i,
				MoveMetric: mm,
			})
		}

		if updates != nil {
			updates <- Update{
				Game:      i,
				Outcome:   gameMetric.Outcome,
				Moves:     gameMetric.Moves,
				TableSize: s.Size(),
				Duration:  gameMetric.Duration,
			}
		}
		log.Info().Msgf("completed game %d of %d: %s in %d plies", i, games, gameMetric.Outcome, gameMetric.Plies)
	}

	summary.TableSize = s.Size()
	summary.Duration = time.Since(start)

	writer, err := metrics.NewWriter(outRoot, "selfplay")
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.OutDir = writer.BaseDir()

	err = writer.WriteSetup(metrics.Setup{
		Games:      games,
		Seed:       seed,
		FreshTable: config.FreshTable,
		StartTime:  start,
		EndTime:    start.Add(summary.Duration),
		Duration:   summary.Duration,
	})
	if err != nil {
		return summary, fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to store move records: %w", err)
	}

	log.Info().Msgf("self-play complete: %s; records in %s", summary, summary.OutDir)
	return summary, nil
}

func newSolver(seed uint64) *solver.Solver {
	return solver.NewSolver(
		solver.WithRand(rand.New(rand.NewSource(seed))),
		solver.WithMetrics(),
	)
}
