package types

import "github.com/gridplay/tictactoe-backend/internal/session"

// ClientMessage is one inbound frame. Cell is a pointer so a missing field
// can be told apart from cell 0.
type ClientMessage struct {
	Type   string `json:"type"` // "create" | "join" | "move"
	GameID string `json:"game_id,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
}

// ServerMessage is one outbound frame: a join confirmation, a state
// broadcast, or a targeted error.
type ServerMessage struct {
	Type         string            `json:"type"` // "game_created" | "game_joined" | "game_state" | "error"
	GameID       string            `json:"game_id,omitempty"`
	PlayerSymbol string            `json:"player_symbol,omitempty"`
	GameState    *session.Snapshot `json:"game_state,omitempty"`
	Message      string            `json:"message,omitempty"`
}
