package engine

import "math/rand"

var suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// NewDeck returns the full 52-card deck in suit then rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for r := Two; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// shuffle is a var so tests can substitute a deterministic deal.
var shuffle = func(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// deckWithout rebuilds a fresh deck minus the cards already dealt, keyed by
// card id. Dealing in two passes pulls the second pass from this remainder,
// so no card can be dealt twice within a round.
func deckWithout(dealt map[string]bool) []Card {
	var rest []Card
	for _, c := range NewDeck() {
		if !dealt[c.ID()] {
			rest = append(rest, c)
		}
	}
	return rest
}
