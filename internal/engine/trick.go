package engine

// IsPlayable reports whether card may be laid given the player's hand and
// the cards already in the trick. The leader may play anything; a follower
// holding the lead suit must follow it. Discarding or trumping is free once
// the hand is void in the lead suit.
func IsPlayable(card Card, hand []Card, trick []PlayedCard) error {
	if _, ok := indexOfCard(hand, card); !ok {
		return ErrCardNotInHand
	}
	if len(trick) == 0 {
		return nil
	}
	lead := trick[0].Card.Suit
	if card.Suit != lead && hasSuit(hand, lead) {
		return ErrMustFollowSuit
	}
	return nil
}

// ResolveTrickWinner picks the winning play: highest trump if any trump was
// played, otherwise highest card of the lead suit. Off-suit cards never win.
func ResolveTrickWinner(trick []PlayedCard, trump *Suit) PlayedCard {
	lead := trick[0].Card.Suit
	best := trick[0]
	for _, pc := range trick[1:] {
		if pc.Card.beats(best.Card, lead, trump) {
			best = pc
		}
	}
	return best
}

func (e *Engine) applyPlayCard(s MatchState, cmd Command) ([]Event, MatchState, error) {
	if err := requireTurn(s, PhaseTrickPlaying, cmd.PlayerID); err != nil {
		return nil, s, err
	}
	if err := IsPlayable(cmd.Card, s.Round.Hands[cmd.PlayerID], s.Round.CurrentTrick); err != nil {
		return nil, s, err
	}
	next := s.clone()
	round := next.Round

	hand := round.Hands[cmd.PlayerID]
	idx, _ := indexOfCard(hand, cmd.Card)
	round.Hands[cmd.PlayerID] = append(hand[:idx], hand[idx+1:]...)
	round.CurrentTrick = append(round.CurrentTrick, PlayedCard{PlayerID: cmd.PlayerID, Card: cmd.Card})
	events := []Event{{Type: EvtCardPlayed, PlayerID: cmd.PlayerID, Card: cmd.Card, Trick: round.TrickNumber}}

	if len(round.CurrentTrick) < numSeats {
		turn, err := NextPlayer(next.Players, cmd.PlayerID)
		if err != nil {
			return nil, s, err
		}
		round.TurnPlayerID = turn
		return events, next, nil
	}

	// Fourth card: the trick is complete.
	winner := ResolveTrickWinner(round.CurrentTrick, round.TrumpSuit)
	winnerInfo, err := next.playerByID(winner.PlayerID)
	if err != nil {
		return nil, s, err
	}
	round.CompletedTricks = append(round.CompletedTricks, Trick{
		Number:   round.TrickNumber,
		Cards:    round.CurrentTrick,
		LeadSuit: round.CurrentTrick[0].Card.Suit,
		WinnerID: winner.PlayerID,
	})
	round.TeamTricks[winnerInfo.TeamID]++
	round.CurrentTrick = []PlayedCard{}
	events = append(events, Event{
		Type:     EvtTrickWon,
		PlayerID: winner.PlayerID,
		TeamID:   winnerInfo.TeamID,
		Trick:    round.TrickNumber,
	})
	if err := round.cardConservation(); err != nil {
		return nil, s, err
	}

	if round.TrickNumber == tricksPerRound {
		closeEvents, err := e.closeRound(&next)
		if err != nil {
			return nil, s, err
		}
		return append(events, closeEvents...), next, nil
	}

	round.TrickNumber++
	round.TurnPlayerID = winner.PlayerID // winner leads the next trick
	return events, next, nil
}

func indexOfCard(cards []Card, target Card) (int, bool) {
	for i, c := range cards {
		if c.Suit == target.Suit && c.Rank == target.Rank {
			return i, true
		}
	}
	return -1, false
}

func hasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}
