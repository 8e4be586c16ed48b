package engine

import "errors"

var ErrNotYourTurn = errors.New("not your turn")
var ErrWrongPhase = errors.New("wrong phase for action")
var ErrIllegalBid = errors.New("illegal bid")
var ErrMustFollowSuit = errors.New("must follow lead suit")
var ErrNotAuctionWinner = errors.New("only the auction winner may select trump")
var ErrPlayerNotFound = errors.New("player not seated in match")
var ErrCardNotInHand = errors.New("card not in hand")
var ErrMatchFull = errors.New("match already has four players")
var ErrAlreadySeated = errors.New("player already seated")
var ErrMatchNotPlayable = errors.New("match is not accepting actions")
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrDeckCorruption means card-count conservation failed mid-round. It is
// not a user error: the round must abort rather than continue on a deck
// that has lost or duplicated cards.
var ErrDeckCorruption = errors.New("deck corruption: card conservation violated")
