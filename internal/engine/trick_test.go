package engine

import (
	"errors"
	"testing"
)

func TestResolveTrickWinner(t *testing.T) {
	spades := Spades
	cases := []struct {
		name  string
		trick []PlayedCard
		trump *Suit
		want  string
	}{
		{
			name: "lone trump beats higher lead-suit cards",
			trick: []PlayedCard{
				{PlayerID: "p0", Card: Card{Suit: Hearts, Rank: Ace}},
				{PlayerID: "p1", Card: Card{Suit: Spades, Rank: Five}},
				{PlayerID: "p2", Card: Card{Suit: Hearts, Rank: King}},
				{PlayerID: "p3", Card: Card{Suit: Hearts, Rank: Two}},
			},
			trump: &spades,
			want:  "p1",
		},
		{
			name: "no trump played, highest lead suit wins",
			trick: []PlayedCard{
				{PlayerID: "p0", Card: Card{Suit: Hearts, Rank: Ace}},
				{PlayerID: "p1", Card: Card{Suit: Hearts, Rank: King}},
				{PlayerID: "p2", Card: Card{Suit: Hearts, Rank: Two}},
				{PlayerID: "p3", Card: Card{Suit: Hearts, Rank: Three}},
			},
			trump: &spades,
			want:  "p0",
		},
		{
			name: "off-suit cards never win without trump",
			trick: []PlayedCard{
				{PlayerID: "p0", Card: Card{Suit: Clubs, Rank: Two}},
				{PlayerID: "p1", Card: Card{Suit: Diamonds, Rank: Ace}},
				{PlayerID: "p2", Card: Card{Suit: Hearts, Rank: Ace}},
				{PlayerID: "p3", Card: Card{Suit: Clubs, Rank: Ten}},
			},
			trump: &spades,
			want:  "p3",
		},
		{
			name: "highest of several trumps wins",
			trick: []PlayedCard{
				{PlayerID: "p0", Card: Card{Suit: Hearts, Rank: Ace}},
				{PlayerID: "p1", Card: Card{Suit: Spades, Rank: Five}},
				{PlayerID: "p2", Card: Card{Suit: Spades, Rank: Jack}},
				{PlayerID: "p3", Card: Card{Suit: Spades, Rank: Seven}},
			},
			trump: &spades,
			want:  "p2",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveTrickWinner(tc.trick, tc.trump)
			if got.PlayerID != tc.want {
				t.Fatalf("winner: got %s, want %s", got.PlayerID, tc.want)
			}
		})
	}
}

func TestIsPlayable(t *testing.T) {
	hand := []Card{
		{Suit: Hearts, Rank: Four},
		{Suit: Clubs, Rank: Nine},
		{Suit: Spades, Rank: Queen},
	}
	leadHearts := []PlayedCard{{PlayerID: "p0", Card: Card{Suit: Hearts, Rank: King}}}

	cases := []struct {
		name    string
		card    Card
		trick   []PlayedCard
		wantErr error
	}{
		{"leader may play anything", Card{Suit: Clubs, Rank: Nine}, nil, nil},
		{"follower must follow lead suit", Card{Suit: Clubs, Rank: Nine}, leadHearts, ErrMustFollowSuit},
		{"following the lead suit is legal", Card{Suit: Hearts, Rank: Four}, leadHearts, nil},
		{"card must be in hand", Card{Suit: Diamonds, Rank: Ace}, nil, ErrCardNotInHand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := IsPlayable(tc.card, hand, tc.trick)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestVoidInLeadSuitMayTrump(t *testing.T) {
	hand := []Card{
		{Suit: Spades, Rank: Two},
		{Suit: Clubs, Rank: Seven},
	}
	trick := []PlayedCard{{PlayerID: "p0", Card: Card{Suit: Hearts, Rank: King}}}
	if err := IsPlayable(Card{Suit: Spades, Rank: Two}, hand, trick); err != nil {
		t.Fatalf("void in lead suit should allow trump: %v", err)
	}
}
