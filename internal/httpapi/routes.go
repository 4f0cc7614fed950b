package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gridplay/tictactoe-backend/internal/registry"
	"github.com/gridplay/tictactoe-backend/internal/ws"
)

func SetupRoutes(reg *registry.Registry, bc *ws.Broadcaster, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/health", Health)
	r.Get("/games", GameStats(reg))
	r.Get("/ws", ws.Handler(reg, bc, log))
	return r
}
