package meta

// MAX_PLIES is the number of moves that fills the board.
const MAX_PLIES = 9

// NUM_GAMES is the default number of self-play games per arena run.
const NUM_GAMES = 100

// SERVER_ADDR is the default listen address for the play server.
const SERVER_ADDR = ":8080"
