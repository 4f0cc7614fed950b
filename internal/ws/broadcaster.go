package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gridplay/tictactoe-backend/internal/session"
)

// Broadcaster owns one outbound queue per live connection. Senders enqueue
// without blocking; each connection's writer goroutine drains its own queue,
// so a slow recipient never stalls the sender's message loop or the other
// recipients.
type Broadcaster struct {
	mu       sync.RWMutex
	outboxes map[session.ConnID]chan []byte
	log      *zap.Logger
}

func NewBroadcaster(log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		outboxes: make(map[session.ConnID]chan []byte),
		log:      log,
	}
}

// Register adds conn's outbound queue to the fan-out table.
func (b *Broadcaster) Register(conn session.ConnID, out chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outboxes[conn] = out
}

// Unregister drops conn from the fan-out table. The queue itself is left to
// the garbage collector once the writer goroutine exits.
func (b *Broadcaster) Unregister(conn session.ConnID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.outboxes, conn)
}

// Send enqueues a payload for a single connection. A full queue or an
// unknown connection drops the frame; delivery failures never surface to the
// caller.
func (b *Broadcaster) Send(conn session.ConnID, payload []byte) {
	b.mu.RLock()
	out, ok := b.outboxes[conn]
	b.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case out <- payload:
	default:
		b.log.Warn("outbox full, dropping frame", zap.String("conn_id", string(conn)))
	}
}

// Broadcast delivers a payload to every listed member except exclude, each
// independently.
func (b *Broadcaster) Broadcast(members []session.ConnID, payload []byte, exclude session.ConnID) {
	for _, m := range members {
		if m == exclude {
			continue
		}
		b.Send(m, payload)
	}
}
