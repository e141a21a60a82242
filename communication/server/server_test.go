package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/communication"
	"tictactoe/game"
	"tictactoe/solver"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := solver.NewSolver(solver.WithRand(rand.New(rand.NewSource(7))))
	ts := httptest.NewServer(NewServer(s).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/play" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "The play endpoint should accept websocket connections")
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) communication.Message {
	t.Helper()
	var msg communication.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// firstEmpty picks the lowest playable cell from a state message, numpad form.
func firstEmpty(t *testing.T, notation string) int {
	t.Helper()
	for cell := 0; cell < 9; cell++ {
		if notation[cell] == '.' {
			return cell + 1
		}
	}
	t.Fatal("no empty cell on the board")
	return 0
}

func TestPlayFullGame(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seat=X")

	msg := readMessage(t, conn)
	require.Equal(t, communication.TypeState, msg.Type, "The server should open with a state message")
	require.Equal(t, ".........", msg.Grid, "The game should start from an empty board")
	require.Equal(t, "X", msg.Turn)
	require.Zero(t, msg.Move, "No move precedes the opening state")

	for msg.Type == communication.TypeState {
		if msg.Turn == "X" {
			move := communication.Message{Type: communication.TypeMove, Move: firstEmpty(t, msg.Grid)}
			require.NoError(t, conn.WriteJSON(&move))
		}
		msg = readMessage(t, conn)
	}

	require.Equal(t, communication.TypeResult, msg.Type, "The game should end with a result message")
	g, err := game.FromNotation(msg.Grid)
	require.NoError(t, err)
	require.NotEqual(t, game.Open, g.Outcome(), "The final board should be terminal")
	require.Equal(t, g.Outcome().String(), msg.Outcome, "The result should match the final board")

	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure),
		"The server should close normally after the result")
}

func TestPlayRejectsBadMoves(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "")

	msg := readMessage(t, conn)
	require.Equal(t, communication.TypeState, msg.Type)

	tests := []struct {
		name string
		send communication.Message
	}{
		{"wrong message type", communication.Message{Type: communication.TypeState}},
		{"move out of range", communication.Message{Type: communication.TypeMove, Move: 10}},
		{"move unset", communication.Message{Type: communication.TypeMove}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, conn.WriteJSON(&test.send))

			got := readMessage(t, conn)

			require.Equal(t, communication.TypeError, got.Type, "A bad message should be answered with an error")
			require.NotEmpty(t, got.Info, "The error should say what was wrong")
		})
	}

	t.Run("occupied cell", func(t *testing.T) {
		move := communication.Message{Type: communication.TypeMove, Move: 5}
		require.NoError(t, conn.WriteJSON(&move))
		state := readMessage(t, conn)
		require.Equal(t, communication.TypeState, state.Type, "A legal move should be committed")

		// O responds, then numpad 5 is taken.
		state = readMessage(t, conn)
		require.Equal(t, communication.TypeState, state.Type)
		require.NoError(t, conn.WriteJSON(&move))

		got := readMessage(t, conn)

		require.Equal(t, communication.TypeError, got.Type, "Replaying an occupied cell should be rejected")
	})
}

func TestPlaySeatO(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seat=O")

	opening := readMessage(t, conn)
	require.Equal(t, ".........", opening.Grid, "The opening state precedes the server's move")

	msg := readMessage(t, conn)
	require.Equal(t, communication.TypeState, msg.Type)
	require.Equal(t, "O", msg.Turn, "The server should move first when the client sits as O")
	require.NotZero(t, msg.Move, "The state should carry the server's committed move")
	require.Equal(t, 1, strings.Count(msg.Grid, "X"), "The server should have placed exactly one X")
}

func TestPlayInvalidSeat(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/play?seat=Q")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "An unknown seat should be rejected before upgrading")
}
