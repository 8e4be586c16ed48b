package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rangvaar/rangvaar-backend/internal/hub"
	"github.com/rangvaar/rangvaar-backend/internal/match"
	"github.com/rangvaar/rangvaar-backend/internal/ws"
)

func SetupRoutes(svc *match.Service, h *hub.Hub) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/matches", CreateMatch(svc, h))
	r.Post("/matches/{code}/join", JoinMatch(svc, h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h))
	return r
}
