package registry

import "github.com/gridplay/tictactoe-backend/internal/session"

// Stats summarizes the pool for the HTTP surface.
type Stats struct {
	Capacity      int `json:"capacity"`
	TotalSessions int `json:"total_sessions"`
	TotalPlayers  int `json:"total_players"`
	Waiting       int `json:"waiting"`
	InProgress    int `json:"in_progress"`
	Finished      int `json:"finished"`
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := Stats{Capacity: r.capacity, TotalSessions: len(r.sessions)}
	for _, s := range r.sessions {
		st.TotalPlayers += s.MemberCount()
		switch s.Status() {
		case session.StatusWaiting:
			st.Waiting++
		case session.StatusInProgress:
			st.InProgress++
		case session.StatusFinished:
			st.Finished++
		}
	}
	return st
}
