package session

import "github.com/gridplay/tictactoe-backend/internal/game"

// Snapshot is the client-visible projection of a session's state. Connection
// handles are never serialized.
type Snapshot struct {
	GameID      string          `json:"game_id"`
	Board       [9]*game.Symbol `json:"board"`
	CurrentTurn game.Symbol     `json:"current_turn"`
	Status      Status          `json:"status"`
	Winner      *game.Symbol    `json:"winner"`
	PlayerCount int             `json:"player_count"`
}

// Snapshot builds the current client-visible view. Empty cells and a missing
// winner marshal as JSON null.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:      s.id,
		CurrentTurn: s.turn,
		Status:      s.status,
		PlayerCount: len(s.members),
	}
	for i, c := range s.board {
		if sym, ok := c.Symbol(); ok {
			sym := sym
			snap.Board[i] = &sym
		}
	}
	if s.winner != "" {
		w := s.winner
		snap.Winner = &w
	}
	return snap
}
