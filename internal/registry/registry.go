package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridplay/tictactoe-backend/internal/game"
	"github.com/gridplay/tictactoe-backend/internal/session"
)

var ErrAllGamesFull = errors.New("all games are full")
var ErrGameNotFound = errors.New("game not found")
var ErrAlreadyInGame = errors.New("already in a game")
var ErrGameOver = errors.New("game is already over")

// DefaultCapacity bounds the pool when no explicit capacity is configured.
const DefaultCapacity = 10

// JoinResult is what the dispatcher needs after a join: the assigned symbol,
// the snapshot to confirm with, and the member handles to broadcast to. Live
// sessions never leave the registry.
type JoinResult struct {
	GameID  string
	Symbol  game.Symbol
	State   session.Snapshot
	Members []session.ConnID
}

// MoveResult carries a committed move's snapshot and broadcast targets.
type MoveResult struct {
	GameID  string
	State   session.Snapshot
	Members []session.ConnID
}

// LeaveResult describes the session a disconnect finished, with the members
// that remain to be notified.
type LeaveResult struct {
	GameID  string
	State   session.Snapshot
	Members []session.ConnID
}

// Registry is the bounded pool of sessions plus the connection membership
// index. One mutex covers the pool and every session in it: the join
// priority scan, a move's validate-then-commit, and disconnect cleanup each
// observe and mutate a consistent snapshot of all sessions.
type Registry struct {
	mu       sync.Mutex
	capacity int
	sessions []*session.Session // creation order, for a stable priority scan
	byID     map[string]*session.Session
	byConn   map[session.ConnID]*session.Session
	log      *zap.Logger
}

func New(capacity int, log *zap.Logger) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		capacity: capacity,
		byID:     make(map[string]*session.Session),
		byConn:   make(map[session.ConnID]*session.Session),
		log:      log,
	}
}

// JoinOrCreate assigns conn to a game slot, in strict priority order:
// conn's existing session (idempotent rejoin), then the earliest-created
// waiting session with one member, then the earliest finished empty session
// (reset for reuse), then a new session if the pool has room. When every
// slot is taken by a live pair it fails with ErrAllGamesFull.
func (r *Registry) JoinOrCreate(conn session.ConnID) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byConn[conn]; ok {
		sym, _ := s.SymbolOf(conn)
		return joinResult(s, sym), nil
	}

	for _, s := range r.sessions {
		if s.Status() == session.StatusWaiting && s.MemberCount() == 1 {
			return r.addMember(s, conn)
		}
	}

	for _, s := range r.sessions {
		if s.Status() == session.StatusFinished && s.MemberCount() == 0 {
			if err := s.Reset(); err != nil {
				continue
			}
			r.log.Info("reusing finished session", zap.String("game_id", s.ID()))
			return r.addMember(s, conn)
		}
	}

	if len(r.sessions) < r.capacity {
		s := r.createLocked()
		return r.addMember(s, conn)
	}

	return JoinResult{}, ErrAllGamesFull
}

// Join adds conn to the session with the given id. Joining a session conn is
// already a member of is treated as success and returns it unchanged. A
// finished session is not rejoinable: its symbols and turn belong to the
// game that ended. When it is also empty the slot is reset and reused, same
// as the matchmaking path.
func (r *Registry) Join(conn session.ConnID, gameID string) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byConn[conn]; ok {
		if s.ID() != gameID {
			return JoinResult{}, ErrAlreadyInGame
		}
		sym, _ := s.SymbolOf(conn)
		return joinResult(s, sym), nil
	}

	s, ok := r.byID[gameID]
	if !ok {
		return JoinResult{}, ErrGameNotFound
	}
	if s.Status() == session.StatusFinished {
		if err := s.Reset(); err != nil {
			return JoinResult{}, ErrGameOver
		}
		r.log.Info("reusing finished session", zap.String("game_id", s.ID()))
	}
	return r.addMember(s, conn)
}

// Create places conn alone in a fresh slot, reusing a finished empty session
// before growing the pool. Unlike JoinOrCreate it never fills a waiting seat.
func (r *Registry) Create(conn session.ConnID) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.byConn[conn]; ok {
		sym, _ := s.SymbolOf(conn)
		return joinResult(s, sym), nil
	}

	for _, s := range r.sessions {
		if s.Status() == session.StatusFinished && s.MemberCount() == 0 {
			if err := s.Reset(); err != nil {
				continue
			}
			return r.addMember(s, conn)
		}
	}

	if len(r.sessions) < r.capacity {
		s := r.createLocked()
		return r.addMember(s, conn)
	}

	return JoinResult{}, ErrAllGamesFull
}

// Move applies one move for conn in its session. The whole
// validate-then-commit sequence runs under the registry lock, so two racing
// moves on the same cell resolve to one success and one rejection.
func (r *Registry) Move(conn session.ConnID, cell int) (MoveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byConn[conn]
	if !ok {
		return MoveResult{}, session.ErrNotAMember
	}
	snap, err := s.ApplyMove(conn, cell)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{GameID: s.ID(), State: snap, Members: s.Members()}, nil
}

// SessionFor returns a read-only view of conn's session, if it has one.
func (r *Registry) SessionFor(conn session.ConnID) (session.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byConn[conn]
	if !ok {
		return session.Snapshot{}, false
	}
	return s.Snapshot(), true
}

// Disconnect removes conn from its session and from the membership index.
// The affected session is finished by the removal; the result carries its
// remaining members so the dispatcher can notify them. Returns false when
// conn owned no session.
func (r *Registry) Disconnect(conn session.ConnID) (LeaveResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byConn[conn]
	if !ok {
		return LeaveResult{}, false
	}
	delete(r.byConn, conn)
	s.RemoveMember(conn)

	r.log.Info("connection left game",
		zap.String("game_id", s.ID()),
		zap.Int("remaining", s.MemberCount()))

	return LeaveResult{GameID: s.ID(), State: s.Snapshot(), Members: s.Members()}, true
}

// Clear drops every session and membership. Test isolation only.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = nil
	r.byID = make(map[string]*session.Session)
	r.byConn = make(map[session.ConnID]*session.Session)
}

// addMember seats conn in s and updates the membership index. Caller holds
// the lock.
func (r *Registry) addMember(s *session.Session, conn session.ConnID) (JoinResult, error) {
	sym, err := s.AddMember(conn)
	if err != nil {
		return JoinResult{}, err
	}
	r.byConn[conn] = s

	r.log.Debug("connection joined game",
		zap.String("game_id", s.ID()),
		zap.String("symbol", string(sym)),
		zap.Int("players", s.MemberCount()))

	return joinResult(s, sym), nil
}

// createLocked grows the pool by one session. Caller holds the lock and has
// checked capacity.
func (r *Registry) createLocked() *session.Session {
	s := session.New(uuid.NewString())
	r.sessions = append(r.sessions, s)
	r.byID[s.ID()] = s

	r.log.Info("created session",
		zap.String("game_id", s.ID()),
		zap.Int("pool_size", len(r.sessions)))
	return s
}

func joinResult(s *session.Session, sym game.Symbol) JoinResult {
	return JoinResult{
		GameID:  s.ID(),
		Symbol:  sym,
		State:   s.Snapshot(),
		Members: s.Members(),
	}
}
