package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tictactoe/utils"
)

// GameRecord is one arena game keyed by its sequence number.
type GameRecord struct {
	ID   int
	Seed uint64
	GameMetric
}

// MoveRecord is one committed move of an arena game.
type MoveRecord struct {
	Game int
	MoveMetric
}

// ThroughputRecord is one cold solve of the full game tree.
type ThroughputRecord struct {
	Rep int
	SearchMetric
}

// Setup captures the parameters and wall-clock span of an experiment run.
type Setup struct {
	Games      int           `json:"games"`
	Seed       uint64        `json:"seed"`
	FreshTable bool          `json:"freshTable"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Duration   time.Duration `json:"duration"`
}

// Writer stores experiment output under a timestamped run directory.
type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>/ and returns a Writer rooted
// there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the run directory files are written into.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// WriteSetup stores the run parameters as setup.json.
func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

// WriteGameRecords stores one row per game as game_records.csv.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "seed", "outcome", "plies", "moves", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Outcome.String(),
			strconv.Itoa(record.Plies),
			utils.JoinInts(record.Moves, " "),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

// WriteMoveRecords stores one row per committed move as move_records.csv.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "step", "player", "move", "duration", "expansions", "hits", "terminals", "table_size"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Move),
			record.Duration.String(),
			strconv.FormatInt(record.Expansions, 10),
			strconv.FormatInt(record.Hits, 10),
			strconv.FormatInt(record.Terminals, 10),
			strconv.Itoa(record.TableSize),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}

// WriteThroughputRecords stores one row per cold solve as throughput.csv.
func (w *Writer) WriteThroughputRecords(records []ThroughputRecord) error {
	path := filepath.Join(w.baseDir, "throughput.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create throughput file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"rep", "duration", "expansions", "terminals", "table_size", "positions_per_sec"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write throughput header: %w", err)
	}

	for _, record := range records {
		rate := 0.0
		if record.Duration > 0 {
			rate = float64(record.Expansions+record.Terminals) / record.Duration.Seconds()
		}
		row := []string{
			strconv.Itoa(record.Rep),
			record.Duration.String(),
			strconv.FormatInt(record.Expansions, 10),
			strconv.FormatInt(record.Terminals, 10),
			strconv.Itoa(record.TableSize),
			strconv.FormatFloat(rate, 'f', 0, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write throughput row: %w", err)
		}
	}

	return nil
}
