package engine

import "testing"

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 52 {
		t.Fatalf("want 52 cards, got %d", len(deck))
	}
	seen := map[string]bool{}
	for _, c := range deck {
		if seen[c.ID()] {
			t.Fatalf("duplicate card %s", c.ID())
		}
		seen[c.ID()] = true
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	deck := NewDeck()
	shuffled := shuffle(deck)
	if len(shuffled) != len(deck) {
		t.Fatalf("shuffle changed deck size: %d", len(shuffled))
	}
	seen := map[string]bool{}
	for _, c := range shuffled {
		seen[c.ID()] = true
	}
	for _, c := range deck {
		if !seen[c.ID()] {
			t.Fatalf("shuffle lost card %s", c.ID())
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	deck := NewDeck()
	first := deck[0]
	_ = shuffle(deck)
	if deck[0] != first {
		t.Fatalf("shuffle mutated its input")
	}
}

func TestCardID(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{Card{Suit: Spades, Rank: Ace}, "spades-A"},
		{Card{Suit: Hearts, Rank: Ten}, "hearts-10"},
		{Card{Suit: Clubs, Rank: Two}, "clubs-2"},
		{Card{Suit: Diamonds, Rank: Jack}, "diamonds-J"},
	}
	for _, tc := range cases {
		if got := tc.card.ID(); got != tc.want {
			t.Fatalf("ID(%v): got %q, want %q", tc.card, got, tc.want)
		}
	}
}

func TestCourtCardsOutrankNumbers(t *testing.T) {
	lead := Hearts
	cases := []struct {
		name string
		a, b Card
		want bool
	}{
		{"jack beats ten", Card{Suit: Hearts, Rank: Jack}, Card{Suit: Hearts, Rank: Ten}, true},
		{"queen beats jack", Card{Suit: Hearts, Rank: Queen}, Card{Suit: Hearts, Rank: Jack}, true},
		{"king beats queen", Card{Suit: Hearts, Rank: King}, Card{Suit: Hearts, Rank: Queen}, true},
		{"ace beats king", Card{Suit: Hearts, Rank: Ace}, Card{Suit: Hearts, Rank: King}, true},
		{"ten loses to jack", Card{Suit: Hearts, Rank: Ten}, Card{Suit: Hearts, Rank: Jack}, false},
		{"off-suit never beats lead", Card{Suit: Clubs, Rank: Ace}, Card{Suit: Hearts, Rank: Two}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.beats(tc.b, lead, nil); got != tc.want {
				t.Fatalf("beats: got %v, want %v", got, tc.want)
			}
		})
	}
}
