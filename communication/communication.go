// Package communication defines the JSON protocol for playing a game over a
// websocket. The server owns the authoritative grid and the solver; clients
// send moves for their seat and mirror the state messages.
package communication

// Message types. The server sends state after every committed move, result
// once at game end, and error for rejected moves; clients only send move.
const (
	TypeState  = "state"
	TypeMove   = "move"
	TypeResult = "result"
	TypeError  = "error"
)

// Message is the envelope for every frame on a game socket. Grid carries the
// 9-cell notation, Turn the side to move. Move is in numpad form (1-9) so the
// zero value means unset; it names the client's move in move messages and the
// just-committed move in state messages. Outcome is set on result messages,
// Info on error messages.
type Message struct {
	Type    string `json:"type"`
	Grid    string `json:"grid,omitempty"`
	Turn    string `json:"turn,omitempty"`
	Move    int    `json:"move,omitempty"`
	Outcome string `json:"outcome,omitempty"`
	Info    string `json:"info,omitempty"`
}
