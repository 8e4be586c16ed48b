package types

import "github.com/rangvaar/rangvaar-backend/internal/engine"

type CardMessage struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

type ClientMessage struct {
	Type     string       `json:"type"` // "SubmitBid" | "SelectTrump" | "PlayCard"
	PlayerID string       `json:"player_id"`
	Amount   int          `json:"amount,omitempty"`
	Pass     bool         `json:"pass,omitempty"`
	Suit     string       `json:"suit,omitempty"`
	Card     *CardMessage `json:"card,omitempty"`
}

type ServerMessage struct {
	Type    string             `json:"type"` // "StateSnapshot" | "Error"
	Version int                `json:"version,omitempty"`
	State   *engine.MatchState `json:"state,omitempty"`
	Error   string             `json:"error,omitempty"`
}
