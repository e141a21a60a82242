package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func runDir(t *testing.T, root, name string) string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, name))
	require.NoError(t, err, "The run should create a timestamped directory under %s", name)
	require.Len(t, entries, 1)
	return filepath.Join(root, name, entries[0].Name())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunSelfPlay(t *testing.T) {
	t.Run("shared table", func(t *testing.T) {
		root := t.TempDir()
		updates := make(chan Update, 3)

		summary, err := RunSelfPlay(Config{Games: 3, Seed: 7, OutRoot: root}, updates)

		require.NoError(t, err)
		require.Equal(t, 3, summary.Games)
		require.Equal(t, 3, summary.Draws, "Every game between two perfect players is a draw")
		require.Zero(t, summary.XWins)
		require.Zero(t, summary.OWins)
		require.Positive(t, summary.TableSize, "The shared table should hold solved positions")

		for i := 1; i <= 3; i++ {
			update := <-updates
			require.Equal(t, i, update.Game, "Updates should arrive in game order")
			require.Equal(t, game.Draw, update.Outcome)
			require.Len(t, update.Moves, 9, "A drawn game fills the board")
		}

		dir := runDir(t, root, "selfplay")
		require.Equal(t, summary.OutDir, dir)
		_, err = os.Stat(filepath.Join(dir, "setup.json"))
		require.NoError(t, err, "The run should store its setup")

		gameRows := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, gameRows, 4, "One header plus one row per game")
		require.Equal(t, "draw", gameRows[1][2], "Game rows should record the outcome")

		moveRows := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Len(t, moveRows, 1+3*9, "One header plus nine moves per drawn game")
	})

	t.Run("fresh table per game", func(t *testing.T) {
		root := t.TempDir()

		summary, err := RunSelfPlay(Config{Games: 2, Seed: 7, FreshTable: true, OutRoot: root}, nil)

		require.NoError(t, err)
		require.Equal(t, 2, summary.Draws, "Rebuilding the solver must not change perfect play")
	})
}

func TestRunThroughput(t *testing.T) {
	root := t.TempDir()

	err := RunThroughput(ThroughputConfig{Reps: 2, Seed: 7, OutRoot: root})

	require.NoError(t, err)
	rows := readCSV(t, filepath.Join(runDir(t, root, "throughput"), "throughput.csv"))
	require.Len(t, rows, 3, "One header plus one row per rep")
	require.Equal(t, "5478", rows[1][4], "A cold solve should memoize every reachable position")
	require.Equal(t, "5478", rows[2][4], "Every rep starts from a fresh table")
}
