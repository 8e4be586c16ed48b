package engine

// The engine is a pure state machine: Apply takes a MatchState and one
// player command and returns the events, the next state, and either nil or a
// typed rule error. All validation happens against the snapshot the caller
// read; commit discipline lives outside this package.

type CommandType string

const (
	CmdStartRound  CommandType = "StartRound"
	CmdSubmitBid   CommandType = "SubmitBid"
	CmdSelectTrump CommandType = "SelectTrump"
	CmdDealRest    CommandType = "DealRest"
	CmdPlayCard    CommandType = "PlayCard"
)

type Command struct {
	Type     CommandType
	PlayerID string
	Amount   int  // SubmitBid
	Pass     bool // SubmitBid
	Suit     Suit // SelectTrump
	Card     Card // PlayCard
}

type EventType string

const (
	EvtRoundStarted   EventType = "RoundStarted"
	EvtCardsDealt     EventType = "CardsDealt"
	EvtBidPlaced      EventType = "BidPlaced"
	EvtAuctionRedealt EventType = "AuctionRedealt"
	EvtAuctionEnded   EventType = "AuctionEnded"
	EvtTrumpSelected  EventType = "TrumpSelected"
	EvtCardPlayed     EventType = "CardPlayed"
	EvtTrickWon       EventType = "TrickWon"
	EvtRoundEnded     EventType = "RoundEnded"
	EvtMatchFinished  EventType = "MatchFinished"
)

type Event struct {
	Type     EventType
	PlayerID string
	TeamID   TeamID
	Amount   int
	Suit     Suit
	Card     Card
	Trick    int
	Round    int
}

// Engine applies commands under an injected scoring policy.
type Engine struct {
	scoring ScoringPolicy
}

// New returns an engine. A nil policy falls back to HouseScoring.
func New(policy ScoringPolicy) *Engine {
	if policy == nil {
		policy = HouseScoring{}
	}
	return &Engine{scoring: policy}
}

// Apply validates cmd against s and produces the next state. On error the
// input state is returned unchanged.
func (e *Engine) Apply(s MatchState, cmd Command) ([]Event, MatchState, error) {
	switch cmd.Type {
	case CmdStartRound:
		return e.applyStartRound(s)
	case CmdSubmitBid:
		return e.applySubmitBid(s, cmd)
	case CmdSelectTrump:
		return e.applySelectTrump(s, cmd)
	case CmdDealRest:
		return e.applyDealRest(s)
	case CmdPlayCard:
		return e.applyPlayCard(s, cmd)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// requireTurn checks phase and turn ownership for a player command.
func requireTurn(s MatchState, phase Phase, playerID string) error {
	if s.Status != StatusPlaying || s.Round == nil {
		return ErrMatchNotPlayable
	}
	if _, err := s.playerByID(playerID); err != nil {
		return err
	}
	if s.Round.Phase != phase {
		return ErrWrongPhase
	}
	if s.Round.TurnPlayerID != playerID {
		return ErrNotYourTurn
	}
	return nil
}
