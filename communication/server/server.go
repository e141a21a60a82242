// Package server hosts games over websockets. Each connection gets a fresh
// grid; the solver and its table are shared across connections.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/solver"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server plays one seat of every game with its solver and lets the connected
// client play the other. The solver table is guarded by a mutex because the
// solver itself is not safe for concurrent use.
type Server struct {
	solver   *solver.Solver
	mutex    sync.Mutex
	upgrader websocket.Upgrader
}

// NewServer returns a server backed by the given solver.
func NewServer(s *solver.Solver) *Server {
	if s == nil {
		panic("server needs a solver")
	}
	return &Server{solver: s}
}

// Handler returns the routing for the game endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", s.handlePlay)
	return mux
}

// ListenAndServe serves games on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("serving games on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handlePlay upgrades the connection and drives one game to completion. The
// seat query parameter names the side the client plays, defaulting to X.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	seat, err := clientSeat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Msgf("failed to upgrade connection from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	log.Info().Msgf("client %s joined as player %s", conn.RemoteAddr(), seat)
	if err := s.play(conn, seat); err != nil {
		log.Error().Msgf("game with %s aborted: %v", conn.RemoteAddr(), err)
	}
}

// play runs one game against the client on conn, announcing every committed
// move as a state message and finishing with a result message and a normal
// close.
func (s *Server) play(conn *websocket.Conn, seat game.Mark) error {
	g := game.New()
	if err := sendState(conn, g, 0); err != nil {
		return err
	}

	for g.Outcome() == game.Open {
		var cell int
		var err error
		if g.Mover() == seat {
			cell, err = s.readMove(conn, g)
			if err != nil {
				return err
			}
		} else {
			cell = s.nextMove(g)
		}
		g.Play(cell)
		if err := sendState(conn, g, cell+1); err != nil {
			return err
		}
	}

	log.Info().Msgf("game with %s finished: %s", conn.RemoteAddr(), g.Outcome())

	result := communication.Message{
		Type:    communication.TypeResult,
		Grid:    g.Notation(),
		Outcome: g.Outcome().String(),
	}
	if err := conn.WriteJSON(&result); err != nil {
		return fmt.Errorf("failed to send result: %w", err)
	}

	deadline := time.Now().Add(time.Second)
	closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, closing, deadline); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// readMove reads client messages until one carries a legal move for g,
// answering anything else with an error message.
func (s *Server) readMove(conn *websocket.Conn, g *game.Grid) (int, error) {
	for {
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return 0, fmt.Errorf("failed to read move: %w", err)
		}
		if msg.Type != communication.TypeMove {
			if err := sendError(conn, fmt.Sprintf("expected a %s message, got %q", communication.TypeMove, msg.Type)); err != nil {
				return 0, err
			}
			continue
		}
		cell := msg.Move - 1
		if cell < 0 || cell > 8 || g.Cell(cell) != game.Empty {
			if err := sendError(conn, fmt.Sprintf("invalid move %d", msg.Move)); err != nil {
				return 0, err
			}
			continue
		}
		return cell, nil
	}
}

// nextMove picks the server's move for the current position.
func (s *Server) nextMove(g *game.Grid) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	record, _ := s.solver.Evaluate(g)
	return record.Move
}

func sendState(conn *websocket.Conn, g *game.Grid, move int) error {
	msg := communication.Message{
		Type: communication.TypeState,
		Grid: g.Notation(),
		Move: move,
	}
	if g.Outcome() == game.Open {
		msg.Turn = g.Mover().String()
	}
	if err := conn.WriteJSON(&msg); err != nil {
		return fmt.Errorf("failed to send state: %w", err)
	}
	return nil
}

func sendError(conn *websocket.Conn, info string) error {
	msg := communication.Message{Type: communication.TypeError, Info: info}
	if err := conn.WriteJSON(&msg); err != nil {
		return fmt.Errorf("failed to send error: %w", err)
	}
	return nil
}

func clientSeat(r *http.Request) (game.Mark, error) {
	value := r.URL.Query().Get("seat")
	if value == "" {
		return game.X, nil
	}
	mark, err := game.ParseMark(value[0])
	if err != nil || len(value) != 1 || mark == game.Empty {
		return 0, fmt.Errorf("seat must be X or O, got %q", value)
	}
	return mark, nil
}
