package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridplay/tictactoe-backend/internal/registry"
	"github.com/gridplay/tictactoe-backend/internal/session"
	"github.com/gridplay/tictactoe-backend/internal/types"
)

// A stuck recipient gets this long per frame before the write is abandoned.
const writeTimeout = 3 * time.Second

// Handler runs the per-connection message loop: accept, decode inbound
// frames, route them to the registry, and push responses/broadcasts onto the
// members' outbound queues. Disconnect cleanup (membership teardown plus a
// final broadcast to whoever is left) runs exactly once via defers, whichever
// path detects the close.
func Handler(reg *registry.Registry, bc *Broadcaster, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		id := session.ConnID(uuid.NewString())
		out := make(chan []byte, 16)
		bc.Register(id, out)

		defer func() {
			bc.Unregister(id)
			if left, ok := reg.Disconnect(id); ok {
				bc.Broadcast(left.Members, stateFrame(left.State), "")
			}
		}()

		// Writer goroutine: drains the outbox so broadcasts to this
		// connection never block anyone else.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go writePump(writeCtx, conn, out)

		log.Debug("connection open", zap.String("conn_id", string(id)))

		// Reader loop. No idle timeout: a connection may sit in a waiting
		// session indefinitely.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Anything else still tears the connection down (cleanup
				// runs in the defers).
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				bc.Send(id, errorFrame("invalid json"))
				continue
			}

			dispatch(reg, bc, id, cm)
		}
	}
}

// dispatch routes one decoded inbound message. Validation failures go back
// to the sender only; successful mutations fan out to the session's members.
func dispatch(reg *registry.Registry, bc *Broadcaster, id session.ConnID, cm types.ClientMessage) {
	switch cm.Type {
	case "create":
		res, err := reg.Create(id)
		if err != nil {
			bc.Send(id, errorFrame(err.Error()))
			return
		}
		bc.Send(id, encode(types.ServerMessage{
			Type:         "game_created",
			GameID:       res.GameID,
			PlayerSymbol: string(res.Symbol),
			GameState:    &res.State,
		}))

	case "join":
		var res registry.JoinResult
		var err error
		if cm.GameID != "" {
			res, err = reg.Join(id, cm.GameID)
		} else {
			res, err = reg.JoinOrCreate(id)
		}
		if err != nil {
			bc.Send(id, errorFrame(err.Error()))
			return
		}
		bc.Send(id, encode(types.ServerMessage{
			Type:         "game_joined",
			GameID:       res.GameID,
			PlayerSymbol: string(res.Symbol),
			GameState:    &res.State,
		}))
		// Tell the player already seated that an opponent arrived.
		bc.Broadcast(res.Members, stateFrame(res.State), id)

	case "move":
		if cm.Cell == nil {
			bc.Send(id, errorFrame("missing cell"))
			return
		}
		res, err := reg.Move(id, *cm.Cell)
		if err != nil {
			bc.Send(id, errorFrame(err.Error()))
			return
		}
		bc.Broadcast(res.Members, stateFrame(res.State), "")

	default:
		bc.Send(id, errorFrame("unknown message type"))
	}
}

func writePump(ctx context.Context, conn *websocket.Conn, out <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-out:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			_ = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
		}
	}
}

func encode(msg types.ServerMessage) []byte {
	payload, _ := json.Marshal(msg)
	return payload
}

func stateFrame(snap session.Snapshot) []byte {
	return encode(types.ServerMessage{Type: "game_state", GameState: &snap})
}

func errorFrame(msg string) []byte {
	return encode(types.ServerMessage{Type: "error", Message: msg})
}
