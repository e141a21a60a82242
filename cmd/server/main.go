package main

import (
	"flag"
	"os"
	"time"

	"tictactoe/communication/server"
	"tictactoe/meta"
	"tictactoe/solver"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	addr := flag.String("addr", meta.SERVER_ADDR, "address to serve games on")
	seed := flag.Uint64("seed", 0, "solver seed, 0 picks one from the clock")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	s := solver.NewSolver(solver.WithRand(rand.New(rand.NewSource(*seed))))

	srv := server.NewServer(s)
	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatal().Msgf("server failed: %v", err)
	}
}
