package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"tictactoe/communication"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// scriptedPlayer returns a fixed move sequence, one cell per call.
type scriptedPlayer struct {
	cells []int
	next  int
}

func (p *scriptedPlayer) NextMove(g *game.Grid) (int, metrics.SearchMetric, error) {
	cell := p.cells[p.next]
	p.next++
	return cell, metrics.SearchMetric{}, nil
}

// scriptedServer sends the given messages in order, reading one move message
// before every state whose turn matches seat and after every error message.
// Received moves are appended to got.
func scriptedServer(t *testing.T, seat string, script []communication.Message, got *[]int) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for _, msg := range script {
			require.NoError(t, conn.WriteJSON(&msg))
			if (msg.Type == communication.TypeState && msg.Turn == seat) || msg.Type == communication.TypeError {
				var move communication.Message
				require.NoError(t, conn.ReadJSON(&move))
				require.Equal(t, communication.TypeMove, move.Type, "Clients only send move messages")
				*got = append(*got, move.Move)
			}
		}

		deadline := time.Now().Add(time.Second)
		closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		require.NoError(t, conn.WriteControl(websocket.CloseMessage, closing, deadline))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestPlay(t *testing.T) {
	t.Run("plays its turns and reports the result", func(t *testing.T) {
		script := []communication.Message{
			{Type: communication.TypeState, Grid: ".........", Turn: "X"},
			{Type: communication.TypeState, Grid: "X...O....", Turn: "X", Move: 5},
			{Type: communication.TypeResult, Grid: "XXXOO....", Outcome: "X"},
		}
		var got []int
		ts := scriptedServer(t, "X", script, &got)
		p := &scriptedPlayer{cells: []int{0, 1}}
		var out strings.Builder

		err := Play(wsURL(ts), game.X, p, &out)

		require.NoError(t, err)
		require.Equal(t, []int{1, 2}, got, "Moves should travel in numpad form")
		require.Contains(t, out.String(), "Player 'X' wins!", "The result banner should name the winner")
	})

	t.Run("mirrors states without moving out of turn", func(t *testing.T) {
		script := []communication.Message{
			{Type: communication.TypeState, Grid: ".........", Turn: "X"},
			{Type: communication.TypeState, Grid: "X........", Turn: "O", Move: 1},
			{Type: communication.TypeResult, Grid: "OXXXOOXOX", Outcome: "draw"},
		}
		var got []int
		ts := scriptedServer(t, "O", script, &got)
		p := &scriptedPlayer{cells: []int{4}}
		var out strings.Builder

		err := Play(wsURL(ts), game.O, p, &out)

		require.NoError(t, err)
		require.Equal(t, []int{5}, got, "The client should move only when it is its turn")
		require.Contains(t, out.String(), "Draw game!", "The result banner should report the draw")
	})

	t.Run("prompts again after a rejected move", func(t *testing.T) {
		script := []communication.Message{
			{Type: communication.TypeState, Grid: ".........", Turn: "X"},
			{Type: communication.TypeError, Info: "invalid move 1"},
			{Type: communication.TypeState, Grid: ".X...O...", Turn: "X", Move: 6},
			{Type: communication.TypeResult, Grid: "OXXXOOXOX", Outcome: "draw"},
		}
		var got []int
		ts := scriptedServer(t, "X", script, &got)
		p := &scriptedPlayer{cells: []int{0, 1, 2}}
		var out strings.Builder

		err := Play(wsURL(ts), game.X, p, &out)

		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, got, "A rejection should prompt a fresh move on the same position")
		require.Contains(t, out.String(), "invalid move 1", "The server's rejection should be shown")
	})

	t.Run("requires a player", func(t *testing.T) {
		require.Panics(t, func() { Play("ws://unused", game.X, nil, nil) })
	})
}
