package engine

// Dealing happens in two passes: five cards each before the auction, the
// remaining eight each once trump is known. The second pass draws from a
// fresh deck minus the ids already out, then reshuffles.

func (e *Engine) applyStartRound(s MatchState) ([]Event, MatchState, error) {
	switch {
	case s.Status == StatusStarting:
		// round 1
	case s.Status == StatusPlaying && s.Round != nil && s.Round.Phase == PhaseRoundEnded:
		if s.RoundNumber >= s.TotalRounds {
			return nil, s, ErrMatchNotPlayable
		}
	default:
		return nil, s, ErrMatchNotPlayable
	}
	next := s.clone()
	dealer := 0
	if next.Round != nil {
		dealer = NextDealer(next.Round.DealerPosition)
	}
	next.RoundNumber++
	next.Status = StatusPlaying
	round, err := newRound(next.Players, next.RoundNumber, dealer)
	if err != nil {
		return nil, s, err
	}
	next.Round = round
	events := []Event{
		{Type: EvtRoundStarted, Round: next.RoundNumber},
		{Type: EvtCardsDealt, Round: next.RoundNumber},
	}
	return events, next, nil
}

// newRound builds a fresh RoundState with the initial five-card hands dealt
// and the seat left of the dealer on turn to open the bidding.
func newRound(players []PlayerInfo, number, dealerPosition int) (*RoundState, error) {
	opener, err := firstBidder(players, dealerPosition)
	if err != nil {
		return nil, err
	}
	round := &RoundState{
		Number:         number,
		Phase:          PhaseBidding,
		DealerPosition: dealerPosition,
		TurnPlayerID:   opener,
		Hands:          dealInitial(players),
		Bids:           []Bid{},
		TrickNumber:    1,
		CurrentTrick:   []PlayedCard{},
		CompletedTricks: []Trick{},
		TeamTricks:     map[TeamID]int{Team1: 0, Team2: 0},
		RoundScores:    map[TeamID]int{Team1: 0, Team2: 0},
	}
	return round, nil
}

func dealInitial(players []PlayerInfo) map[string][]Card {
	deck := shuffle(NewDeck())
	hands := make(map[string][]Card, len(players))
	idx := 0
	for _, p := range players {
		hands[p.UserID] = append([]Card(nil), deck[idx:idx+cardsInitial]...)
		idx += cardsInitial
	}
	return hands
}

func (e *Engine) applySelectTrump(s MatchState, cmd Command) ([]Event, MatchState, error) {
	if s.Status != StatusPlaying || s.Round == nil {
		return nil, s, ErrMatchNotPlayable
	}
	if _, err := s.playerByID(cmd.PlayerID); err != nil {
		return nil, s, err
	}
	if s.Round.Phase != PhaseTrumpSelection {
		return nil, s, ErrWrongPhase
	}
	if s.Round.HighestBid == nil || s.Round.HighestBid.PlayerID != cmd.PlayerID {
		return nil, s, ErrNotAuctionWinner
	}
	if !validSuit(cmd.Suit) {
		return nil, s, ErrUnsupportedCommand
	}
	next := s.clone()
	trump := cmd.Suit
	next.Round.TrumpSuit = &trump
	next.Round.Phase = PhaseDealingRest
	events := []Event{{Type: EvtTrumpSelected, PlayerID: cmd.PlayerID, Suit: trump}}
	return events, next, nil
}

func validSuit(s Suit) bool {
	switch s {
	case Spades, Hearts, Diamonds, Clubs:
		return true
	}
	return false
}

// applyDealRest completes every hand to thirteen cards. A size mismatch
// afterwards is ErrDeckCorruption: abort the round, do not play on.
func (e *Engine) applyDealRest(s MatchState) ([]Event, MatchState, error) {
	if s.Status != StatusPlaying || s.Round == nil {
		return nil, s, ErrMatchNotPlayable
	}
	if s.Round.Phase != PhaseDealingRest {
		return nil, s, ErrWrongPhase
	}
	next := s.clone()
	round := next.Round

	dealt := map[string]bool{}
	for _, hand := range round.Hands {
		for _, c := range hand {
			dealt[c.ID()] = true
		}
	}
	rest := shuffle(deckWithout(dealt))
	if len(rest) != (cardsPerHand-cardsInitial)*len(next.Players) {
		return nil, s, ErrDeckCorruption
	}
	idx := 0
	for _, p := range next.Players {
		round.Hands[p.UserID] = append(round.Hands[p.UserID], rest[idx:idx+cardsPerHand-cardsInitial]...)
		idx += cardsPerHand - cardsInitial
	}
	for _, p := range next.Players {
		if len(round.Hands[p.UserID]) != cardsPerHand {
			return nil, s, ErrDeckCorruption
		}
	}
	if err := round.cardConservation(); err != nil {
		return nil, s, err
	}
	round.Phase = PhaseTrickPlaying
	// The auction winner leads the first trick.
	round.TurnPlayerID = round.HighestBid.PlayerID
	events := []Event{{Type: EvtCardsDealt, Round: round.Number}}
	return events, next, nil
}
