package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// ThroughputConfig parameterizes repeated cold solves.
type ThroughputConfig struct {
	Reps    int    // number of cold solves, 10 when zero
	Seed    uint64 // base tie-break seed, time-based when zero; advanced per rep
	OutRoot string // record output root, "experiments" when empty
}

// RunThroughput measures how fast a cold solver exhausts the game tree: each
// rep builds a fresh solver and evaluates the empty position, which expands
// every reachable one.
func RunThroughput(config ThroughputConfig) error {
	reps := config.Reps
	if reps <= 0 {
		reps = 10
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	outRoot := config.OutRoot
	if outRoot == "" {
		outRoot = "experiments"
	}

	log.Info().Msgf("starting throughput run: %d cold solves, seed %d", reps, seed)

	records := []metrics.ThroughputRecord{}
	for rep := 1; rep <= reps; rep++ {
		s := newSolver(seed + uint64(rep-1))
		g := game.New()
		rec, metric := s.Evaluate(g)

		records = append(records, metrics.ThroughputRecord{
			Rep:          rep,
			SearchMetric: metric,
		})
		log.Info().Msgf("rep %d of %d: value %d, %d positions in %s",
			rep, reps, rec.Value, metric.TableSize, metric.Duration)
	}

	writer, err := metrics.NewWriter(outRoot, "throughput")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteThroughputRecords(records); err != nil {
		return fmt.Errorf("failed to store throughput records: %w", err)
	}

	log.Info().Msgf("throughput run complete; records in %s", writer.BaseDir())
	return nil
}
