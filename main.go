package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tictactoe/communication/client"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/solver"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const menu = "Choose game type:\n" +
	"1:  player  vs player, 2:  player  vs computer,\n" +
	"3: computer vs player, 4: computer vs computer\n"

func main() {
	connect := flag.String("connect", "", "play on a remote server, e.g. ws://localhost:8080/play")
	seat := flag.String("seat", "X", "seat to play in a remote game (X or O)")
	seed := flag.Uint64("seed", 0, "solver seed, 0 picks one from the clock")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *connect != "" {
		if err := runRemote(*connect, *seat); err != nil {
			log.Fatal().Msgf("remote game failed: %v", err)
		}
		return
	}
	runLocal(*seed)
}

// runLocal plays games on this terminal until the user stops. The solver and
// its table are shared by every computer seat of the session.
func runLocal(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := solver.NewSolver(solver.WithRand(rand.New(rand.NewSource(seed))))
	in := bufio.NewScanner(os.Stdin)

	for {
		xComputer, oComputer, ok := selectPlayers(in)
		if !ok {
			break
		}
		e := engine.NewLocal(newPlayer(xComputer, s, in), newPlayer(oComputer, s, in))
		if _, _, err := e.Run(); err != nil {
			log.Fatal().Msgf("game failed: %v", err)
		}
		if !wantsToPlayAgain(in) {
			break
		}
	}
	fmt.Println("\nGoodbye!")
}

// runRemote plays one seat of a game hosted by a server.
func runRemote(url string, seatName string) error {
	if len(seatName) != 1 {
		return fmt.Errorf("seat must be X or O, got %q", seatName)
	}
	seat, err := game.ParseMark(seatName[0])
	if err != nil || seat == game.Empty {
		return fmt.Errorf("seat must be X or O, got %q", seatName)
	}
	in := bufio.NewScanner(os.Stdin)
	return client.Play(fmt.Sprintf("%s?seat=%s", url, seatName), seat, player.NewHuman(in, os.Stdout), os.Stdout)
}

// selectPlayers pops up the game type menu and reports whether each seat is
// played by the computer. ok is false when the input is exhausted.
func selectPlayers(in *bufio.Scanner) (xComputer, oComputer, ok bool) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 80))
	for {
		fmt.Print(menu)
		if !in.Scan() {
			return false, false, false
		}
		answer, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil || answer < 1 || answer > 4 {
			fmt.Println("Invalid game type! Try again.")
			continue
		}
		answer--
		return answer/2 == 1, answer%2 == 1, true
	}
}

func newPlayer(computer bool, s *solver.Solver, in *bufio.Scanner) player.Player {
	if computer {
		return player.NewComputer(s, os.Stdout)
	}
	return player.NewHuman(in, os.Stdout)
}

// wantsToPlayAgain asks after a finished game; anything but an explicit yes
// counts as no.
func wantsToPlayAgain(in *bufio.Scanner) bool {
	fmt.Print("Play again? ")
	if !in.Scan() {
		return false
	}
	switch in.Text() {
	case "y", "Y", "yes", "Yes", "YES":
		return true
	}
	return false
}
