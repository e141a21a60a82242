// Package client plays one seat of a remote game, mirroring the server's
// state messages onto the local terminal.
package client

import (
	"fmt"
	"io"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/player"

	"github.com/gorilla/websocket"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// Play dials the game server at url and plays seat with p until the server
// reports a result. Every state message is rendered to out; when the server
// rejects a move it is printed and p is prompted again on the same position.
func Play(url string, seat game.Mark, p player.Player, out io.Writer) error {
	if p == nil {
		panic("client needs a player")
	}
	if out == nil {
		out = io.Discard
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	render := termenv.NewOutput(out)
	// The last mirrored position, for prompting again after a rejection.
	var g *game.Grid
	for {
		var msg communication.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		switch msg.Type {
		case communication.TypeState:
			grid, err := game.FromNotation(msg.Grid)
			if err != nil {
				return fmt.Errorf("bad state from server: %w", err)
			}
			g = grid
			fmt.Fprintln(out)
			fmt.Fprint(out, game.Render(render, g))
			if msg.Turn != seat.String() {
				continue
			}
			if err := sendMove(conn, seat, p, g); err != nil {
				return err
			}
		case communication.TypeError:
			fmt.Fprintln(out, msg.Info)
			if g == nil {
				continue
			}
			// The server only rejects our own moves, so it is still
			// our turn on the last position.
			if err := sendMove(conn, seat, p, g); err != nil {
				return err
			}
		case communication.TypeResult:
			switch msg.Outcome {
			case game.Draw.String():
				fmt.Fprintln(out, "Draw game!")
			default:
				fmt.Fprintf(out, "Player '%s' wins!\n", msg.Outcome)
			}
		default:
			log.Warn().Msgf("ignoring %q message from server", msg.Type)
		}
	}
}

func sendMove(conn *websocket.Conn, seat game.Mark, p player.Player, g *game.Grid) error {
	cell, _, err := p.NextMove(g)
	if err != nil {
		return fmt.Errorf("player %s: %w", seat, err)
	}
	move := communication.Message{Type: communication.TypeMove, Move: cell + 1}
	if err := conn.WriteJSON(&move); err != nil {
		return fmt.Errorf("failed to send move: %w", err)
	}
	return nil
}
