package engine

import "fmt"

// Suit represents a card suit.
type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

// Rank is the numeric strength of a card. Number cards carry their pip
// value; Jack through Ace sit above Ten in that order.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Card is an immutable playing card.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

var rankCodes = map[Rank]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// ID returns the stable suit+rank key for the card, e.g. "spades-A" or
// "hearts-10". Hands and tricks are reconciled against these keys.
func (c Card) ID() string {
	code, ok := rankCodes[c.Rank]
	if !ok {
		code = fmt.Sprintf("%d", int(c.Rank))
	}
	return fmt.Sprintf("%s-%s", c.Suit, code)
}

// Value returns the card's point value under house rules. Only court cards
// and aces carry points; the engine's default scoring counts tricks, not
// points, so this exists for hosts that settle on card points instead.
func (c Card) Value() int {
	switch c.Rank {
	case Ace:
		return 5
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	case Ten:
		return 1
	default:
		return 0
	}
}

func (c Card) String() string { return c.ID() }

// beats reports whether a beats b for trick resolution, given the led suit
// and the round's trump. Cards of neither suit never beat anything.
func (c Card) beats(b Card, lead Suit, trump *Suit) bool {
	if trump != nil {
		if c.Suit == *trump && b.Suit != *trump {
			return true
		}
		if b.Suit == *trump && c.Suit != *trump {
			return false
		}
		if c.Suit == *trump && b.Suit == *trump {
			return c.Rank > b.Rank
		}
	}
	if c.Suit == lead && b.Suit != lead {
		return true
	}
	if b.Suit == lead && c.Suit != lead {
		return false
	}
	if c.Suit == lead && b.Suit == lead {
		return c.Rank > b.Rank
	}
	return false
}
