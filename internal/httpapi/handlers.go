package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/hub"
	"github.com/rangvaar/rangvaar-backend/internal/lobby"
	"github.com/rangvaar/rangvaar-backend/internal/match"
	"github.com/rangvaar/rangvaar-backend/internal/store"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createMatchRequest struct {
	TotalRounds int `json:"total_rounds"`
}

type joinRequest struct {
	PlayerID string `json:"player_id"`
}

// CreateMatch allocates a join code, persists the empty match, and opens a
// room for it.
func CreateMatch(svc *match.Service, h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req) // empty body means defaults
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			_, err = svc.Create(r.Context(), c, req.TotalRounds)
			if errors.Is(err, store.ErrAlreadyExists) {
				continue // collision on code, regenerate
			}
			if err != nil {
				http.Error(w, "failed to create match", http.StatusInternalServerError)
				return
			}
			code = c
			break
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.EnsureLobby{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to open room", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// JoinMatch seats a player, retrying the commit when a concurrent join wins
// the version race.
func JoinMatch(svc *match.Service, h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		var req joinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
			http.Error(w, "missing player_id", http.StatusBadRequest)
			return
		}

		var snap match.Snapshot
		var err error
		for attempt := 0; attempt < 4; attempt++ {
			snap, err = svc.Join(r.Context(), code, req.PlayerID)
			if !errors.Is(err, store.ErrVersionConflict) {
				break
			}
		}
		if err != nil {
			http.Error(w, err.Error(), joinStatus(err))
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.EnsureLobby{Code: code, Reply: reply}
		if lb := <-reply; lb != nil {
			lb.NotifyCommit(snap)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Version int                `json:"version"`
			State   *engine.MatchState `json:"state"`
		}{Version: snap.Version, State: &snap.State})
	}
}

func joinStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrMatchFull),
		errors.Is(err, engine.ErrAlreadySeated),
		errors.Is(err, engine.ErrMatchNotPlayable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
