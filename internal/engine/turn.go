package engine

// Rotation is strictly clockwise: increasing seat position, wrapping at 4.

// NextPlayer returns the id of the player seated clockwise of current.
func NextPlayer(players []PlayerInfo, currentID string) (string, error) {
	cur := -1
	for _, p := range players {
		if p.UserID == currentID {
			cur = p.Position
			break
		}
	}
	if cur == -1 {
		return "", ErrPlayerNotFound
	}
	return playerAtSeat(players, (cur+1)%numSeats)
}

// NextDealer rotates the dealer one seat clockwise each round.
func NextDealer(previousDealerPosition int) int {
	return (previousDealerPosition + 1) % numSeats
}

func playerAtSeat(players []PlayerInfo, position int) (string, error) {
	for _, p := range players {
		if p.Position == position {
			return p.UserID, nil
		}
	}
	return "", ErrPlayerNotFound
}

// firstBidder is the seat immediately clockwise of the dealer.
func firstBidder(players []PlayerInfo, dealerPosition int) (string, error) {
	return playerAtSeat(players, (dealerPosition+1)%numSeats)
}
