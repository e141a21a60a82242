package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tictactoe/experiments"
	"tictactoe/game"
	"tictactoe/meta"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type doneMsg struct {
	summary experiments.Summary
	err     error
}

type model struct {
	games     int
	played    int
	draws     int
	xWins     int
	oWins     int
	tableSize int
	startTime time.Time
	recent    []string
	updates   chan experiments.Update
	done      chan doneMsg
	summary   *experiments.Summary
	err       error
}

func initialModel(games int, updates chan experiments.Update, done chan doneMsg) model {
	return model{
		games:     games,
		startTime: time.Now(),
		updates:   updates,
		done:      done,
	}
}

func waitForUpdate(updates chan experiments.Update) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func waitForDone(done chan doneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.done), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		return m, tickCmd()
	case experiments.Update:
		m.played++
		switch msg.Outcome {
		case game.Draw:
			m.draws++
		case game.XWins:
			m.xWins++
		case game.OWins:
			m.oWins++
		}
		m.tableSize = msg.TableSize
		line := fmt.Sprintf("game %d: %s after %d plies in %s",
			msg.Game, msg.Outcome, len(msg.Moves), msg.Duration.Round(time.Microsecond))
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		return m, waitForUpdate(m.updates)
	case doneMsg:
		m.summary = &msg.summary
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)

	s := fmt.Sprintf("Games Played:     %d of %d\n", m.played, m.games)
	s += fmt.Sprintf("Draws:            %d\n", m.draws)
	s += fmt.Sprintf("X Wins:           %d\n", m.xWins)
	s += fmt.Sprintf("O Wins:           %d\n", m.oWins)
	s += fmt.Sprintf("Solved Positions: %d\n", m.tableSize)
	s += fmt.Sprintf("Duration:         %s\n\n", duration.Round(time.Second))

	s += "Recent Games:\n"
	for _, line := range m.recent {
		s += line + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	games := flag.Int("games", meta.NUM_GAMES, "number of self-play games")
	seed := flag.Uint64("seed", 0, "solver seed, 0 picks one from the clock")
	fresh := flag.Bool("fresh", false, "rebuild the solver between games instead of reusing the table")
	out := flag.String("out", "experiments", "output root for run records")
	reps := flag.Int("throughput", 0, "run this many cold-solve throughput reps instead of self-play")
	tui := flag.Bool("tui", false, "watch the run in a terminal UI")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *reps > 0 {
		err := experiments.RunThroughput(experiments.ThroughputConfig{
			Reps:    *reps,
			Seed:    *seed,
			OutRoot: *out,
		})
		if err != nil {
			log.Fatal().Msgf("throughput run failed: %v", err)
		}
		return
	}

	if *games <= 0 {
		*games = meta.NUM_GAMES
	}
	config := experiments.Config{
		Games:      *games,
		Seed:       *seed,
		FreshTable: *fresh,
		OutRoot:    *out,
	}

	if !*tui {
		summary, err := experiments.RunSelfPlay(config, nil)
		if err != nil {
			log.Fatal().Msgf("self-play run failed: %v", err)
		}
		fmt.Println(summary)
		return
	}

	// Keep log lines from tearing up the UI.
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	updates := make(chan experiments.Update, *games)
	done := make(chan doneMsg, 1)
	go func() {
		summary, err := experiments.RunSelfPlay(config, updates)
		done <- doneMsg{summary: summary, err: err}
	}()

	final, err := tea.NewProgram(initialModel(*games, updates, done)).Run()
	if err != nil {
		log.Fatal().Msgf("terminal UI failed: %v", err)
	}
	m := final.(model)
	if m.err != nil {
		log.Fatal().Msgf("self-play run failed: %v", m.err)
	}
	if m.summary != nil {
		fmt.Println(*m.summary)
	}
}
