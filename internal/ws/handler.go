package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/hub"
	"github.com/rangvaar/rangvaar-backend/internal/lobby"
	"github.com/rangvaar/rangvaar-backend/internal/types"
)

func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 8)
		clientID := uuid.NewString()

		lb.Inbox() <- lobby.Join{ClientID: clientID, Outbox: out}
		defer func() { lb.Inbox() <- lobby.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				state := snap.State
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &state}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (lobby.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			errReply := make(chan error, 1)
			lb.Inbox() <- lobby.FromClient{Cmd: cmd, Reply: errReply}
			select {
			case cmdErr := <-errReply:
				if cmdErr != nil {
					writeError(r.Context(), conn, cmdErr.Error())
				}
			case <-time.After(5 * time.Second):
				writeError(r.Context(), conn, "timed out")
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case "SubmitBid":
		return engine.Command{
			Type:     engine.CmdSubmitBid,
			PlayerID: m.PlayerID,
			Amount:   m.Amount,
			Pass:     m.Pass,
		}, true
	case "SelectTrump":
		suit, ok := parseSuit(m.Suit)
		if !ok {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdSelectTrump, PlayerID: m.PlayerID, Suit: suit}, true
	case "PlayCard":
		if m.Card == nil {
			return engine.Command{}, false
		}
		suit, ok := parseSuit(m.Card.Suit)
		if !ok {
			return engine.Command{}, false
		}
		card := engine.Card{Suit: suit, Rank: engine.Rank(m.Card.Rank)}
		return engine.Command{Type: engine.CmdPlayCard, PlayerID: m.PlayerID, Card: card}, true
	default:
		return engine.Command{}, false
	}
}

func parseSuit(s string) (engine.Suit, bool) {
	switch engine.Suit(s) {
	case engine.Spades, engine.Hearts, engine.Diamonds, engine.Clubs:
		return engine.Suit(s), true
	default:
		return "", false
	}
}
