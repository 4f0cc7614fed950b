package session

import (
	"errors"

	"github.com/gridplay/tictactoe-backend/internal/game"
)

var ErrSessionFull = errors.New("game is full")
var ErrAlreadyMember = errors.New("already in this game")
var ErrNotAMember = errors.New("not in this game")
var ErrGameNotActive = errors.New("game is not in progress")
var ErrNotResettable = errors.New("session cannot be reset")

// ConnID is the opaque handle of one live transport connection. It is valid
// only for the connection's lifetime and is never sent to clients.
type ConnID string

// Status is the session lifecycle state.
type Status string

const (
	StatusWaiting    Status = "waiting"     // one member, waiting for an opponent
	StatusInProgress Status = "in_progress" // two members, moves accepted
	StatusFinished   Status = "finished"    // win, draw, or a member disconnected
)

// Session is one game's authoritative state: board, turn, status, winner, and
// the member connections mapped to their symbols.
//
// Session is not safe for concurrent use on its own. It is owned exclusively
// by the registry, which serializes every call under its lock.
type Session struct {
	id      string
	board   game.Board
	turn    game.Symbol
	status  Status
	winner  game.Symbol // empty unless a win was detected
	members map[ConnID]game.Symbol
}

func New(id string) *Session {
	return &Session{
		id:      id,
		turn:    game.SymbolX,
		status:  StatusWaiting,
		members: make(map[ConnID]game.Symbol, 2),
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Status() Status   { return s.status }
func (s *Session) MemberCount() int { return len(s.members) }

// Members returns the handles of the current member connections, for
// broadcast fan-out.
func (s *Session) Members() []ConnID {
	ids := make([]ConnID, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	return ids
}

// SymbolOf resolves a member connection to its assigned symbol.
func (s *Session) SymbolOf(conn ConnID) (game.Symbol, bool) {
	sym, ok := s.members[conn]
	return sym, ok
}

// AddMember assigns the first unassigned symbol to conn: X when the session
// is empty, O when one member exists. The second join moves the session to
// in_progress.
func (s *Session) AddMember(conn ConnID) (game.Symbol, error) {
	if _, ok := s.members[conn]; ok {
		return "", ErrAlreadyMember
	}
	if len(s.members) >= 2 {
		return "", ErrSessionFull
	}

	sym := game.SymbolX
	if len(s.members) == 1 {
		sym = game.SymbolO
	}
	s.members[conn] = sym

	if len(s.members) == 2 {
		s.status = StatusInProgress
	}
	return sym, nil
}

// ApplyMove validates and commits one move for conn. Moves on a session that
// is not in progress are rejected here, before the rule engine sees them.
func (s *Session) ApplyMove(conn ConnID, cell int) (Snapshot, error) {
	sym, ok := s.members[conn]
	if !ok {
		return Snapshot{}, ErrNotAMember
	}
	if s.status != StatusInProgress {
		return Snapshot{}, ErrGameNotActive
	}

	board, outcome, err := game.Apply(s.board, cell, sym, s.turn)
	if err != nil {
		return Snapshot{}, err
	}

	s.board = board
	switch outcome {
	case game.OutcomeWin:
		s.status = StatusFinished
		s.winner = sym
	case game.OutcomeDraw:
		s.status = StatusFinished
	default:
		s.turn = s.turn.Other()
	}
	return s.Snapshot(), nil
}

// RemoveMember deletes conn's membership and ends the game for whoever is
// left: a disconnect always finishes the session, with no winner. Reports
// whether conn was actually a member.
func (s *Session) RemoveMember(conn ConnID) bool {
	if _, ok := s.members[conn]; !ok {
		return false
	}
	delete(s.members, conn)
	s.status = StatusFinished
	s.winner = ""
	return true
}

// Reset restores the session to its initial empty state so the slot can be
// reused. Only a finished session with no members may be reset.
func (s *Session) Reset() error {
	if s.status != StatusFinished || len(s.members) != 0 {
		return ErrNotResettable
	}
	s.board = game.Board{}
	s.turn = game.SymbolX
	s.status = StatusWaiting
	s.winner = ""
	return nil
}
