package engine

// The auction rotates clockwise from the seat left of the dealer. Each turn
// a player either raises strictly above the standing bid or passes. Three
// passes in a row after the standing bid hand the contract to its owner. If
// all four seats pass before anyone bids, the deal is void and the same
// dealer redeals; a contract requires at least one real bid.

func (e *Engine) applySubmitBid(s MatchState, cmd Command) ([]Event, MatchState, error) {
	if err := requireTurn(s, PhaseBidding, cmd.PlayerID); err != nil {
		return nil, s, err
	}
	if cmd.Pass {
		return e.applyPass(s, cmd.PlayerID)
	}

	round := s.Round
	if cmd.Amount < MinBid || cmd.Amount > MaxBid {
		return nil, s, ErrIllegalBid
	}
	if round.HighestBid != nil && cmd.Amount <= round.HighestBid.Amount {
		return nil, s, ErrIllegalBid
	}
	next := s.clone()
	bid := Bid{PlayerID: cmd.PlayerID, Amount: cmd.Amount}
	next.Round.Bids = append(next.Round.Bids, bid)
	next.Round.HighestBid = &bid
	turn, err := NextPlayer(next.Players, cmd.PlayerID)
	if err != nil {
		return nil, s, err
	}
	next.Round.TurnPlayerID = turn
	events := []Event{{Type: EvtBidPlaced, PlayerID: cmd.PlayerID, Amount: cmd.Amount}}
	return events, next, nil
}

func (e *Engine) applyPass(s MatchState, playerID string) ([]Event, MatchState, error) {
	next := s.clone()
	round := next.Round
	round.Bids = append(round.Bids, Bid{PlayerID: playerID, Pass: true})
	events := []Event{{Type: EvtBidPlaced, PlayerID: playerID}}

	if round.HighestBid != nil {
		if trailingPasses(round.Bids) >= numSeats-1 {
			// Rotation has come back around to the highest bidder.
			round.Phase = PhaseTrumpSelection
			round.TurnPlayerID = round.HighestBid.PlayerID
			events = append(events, Event{
				Type:     EvtAuctionEnded,
				PlayerID: round.HighestBid.PlayerID,
				Amount:   round.HighestBid.Amount,
			})
			return events, next, nil
		}
	} else if len(round.Bids) == numSeats {
		// Nobody wanted the hand: void the deal and redeal with the same
		// dealer rather than force a contract on an unwilling seat.
		round.Hands = dealInitial(next.Players)
		round.Bids = []Bid{}
		opener, err := firstBidder(next.Players, round.DealerPosition)
		if err != nil {
			return nil, s, err
		}
		round.TurnPlayerID = opener
		events = append(events, Event{Type: EvtAuctionRedealt, Round: round.Number})
		return events, next, nil
	}

	turn, err := NextPlayer(next.Players, playerID)
	if err != nil {
		return nil, s, err
	}
	round.TurnPlayerID = turn
	return events, next, nil
}

// trailingPasses counts the consecutive passes at the tail of the bid log.
func trailingPasses(bids []Bid) int {
	n := 0
	for i := len(bids) - 1; i >= 0; i-- {
		if !bids[i].Pass {
			break
		}
		n++
	}
	return n
}
