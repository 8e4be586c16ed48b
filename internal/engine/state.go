package engine

// Phase is the stage a round is in.
type Phase string

const (
	PhaseBidding        Phase = "bidding"
	PhaseTrumpSelection Phase = "trump_selection"
	PhaseDealingRest    Phase = "dealing_rest"
	PhaseTrickPlaying   Phase = "trick_playing"
	PhaseRoundEnded     Phase = "round_ended"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusStarting  Status = "starting"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// TeamID is 1 or 2. Seats 0 and 2 are team 1, seats 1 and 3 are team 2.
type TeamID int

const (
	Team1 TeamID = 1
	Team2 TeamID = 2
)

const (
	numSeats      = 4
	cardsInitial  = 5
	cardsPerHand  = 13
	tricksPerRound = 13
	// Contract bounds: a real bid names at least 7 of the 13 tricks.
	MinBid = 7
	MaxBid = 13
)

// TeamForSeat maps a seat position to its fixed team.
func TeamForSeat(position int) TeamID {
	if position%2 == 0 {
		return Team1
	}
	return Team2
}

// PlayerInfo pins a user to a seat and team for the whole match.
type PlayerInfo struct {
	UserID   string `json:"user_id"`
	Position int    `json:"position"`
	TeamID   TeamID `json:"team_id"`
}

// Team tracks the two members and their running score across rounds.
type Team struct {
	PlayerIDs       []string `json:"player_ids"`
	CumulativeScore int      `json:"cumulative_score"`
}

// Bid is a recorded auction action. Pass distinguishes declining from any
// numeric amount, so there is no magic zero bid.
type Bid struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
	Pass     bool   `json:"pass"`
}

// PlayedCard is one card laid into the current trick.
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// Trick is an immutable completed trick.
type Trick struct {
	Number   int          `json:"number"`
	Cards    []PlayedCard `json:"cards"`
	LeadSuit Suit         `json:"lead_suit"`
	WinnerID string       `json:"winner_id"`
}

// RoundState holds everything scoped to one deal-bid-play-score cycle.
type RoundState struct {
	Number         int               `json:"number"`
	Phase          Phase             `json:"phase"`
	DealerPosition int               `json:"dealer_position"`
	TurnPlayerID   string            `json:"turn_player_id"`
	Hands          map[string][]Card `json:"hands"`
	Bids           []Bid             `json:"bids"`
	HighestBid     *Bid              `json:"highest_bid,omitempty"`
	TrumpSuit      *Suit             `json:"trump_suit,omitempty"`
	TrickNumber    int               `json:"trick_number"`
	CurrentTrick   []PlayedCard      `json:"current_trick"`
	CompletedTricks []Trick          `json:"completed_tricks"`
	TeamTricks     map[TeamID]int    `json:"team_tricks"`
	RoundScores    map[TeamID]int    `json:"round_scores"`
	PenaltyApplied bool              `json:"penalty_applied"`
}

// MatchState is the root state container. Operations take and return it by
// value; there is no process-wide match instance.
type MatchState struct {
	Players      []PlayerInfo    `json:"players"`
	Teams        map[TeamID]Team `json:"teams"`
	TotalRounds  int             `json:"total_rounds"`
	RoundNumber  int             `json:"round_number"`
	Round        *RoundState     `json:"round,omitempty"`
	Status       Status          `json:"status"`
	WinnerTeamID TeamID          `json:"winner_team_id,omitempty"` // 0 until decided
}

// NewMatch creates an empty match waiting for seats. totalRounds must be 3
// or 5; anything else falls back to 3.
func NewMatch(totalRounds int) MatchState {
	if totalRounds != 3 && totalRounds != 5 {
		totalRounds = 3
	}
	return MatchState{
		Players:     []PlayerInfo{},
		Teams:       map[TeamID]Team{Team1: {}, Team2: {}},
		TotalRounds: totalRounds,
		Status:      StatusWaiting,
	}
}

// AddPlayer seats a user at the next free position. Filling the fourth seat
// moves the match to Starting; the host then issues CmdStartRound.
func AddPlayer(s MatchState, userID string) (MatchState, error) {
	if s.Status != StatusWaiting {
		return s, ErrMatchNotPlayable
	}
	if len(s.Players) >= numSeats {
		return s, ErrMatchFull
	}
	for _, p := range s.Players {
		if p.UserID == userID {
			return s, ErrAlreadySeated
		}
	}
	next := s.clone()
	pos := len(next.Players)
	team := TeamForSeat(pos)
	next.Players = append(next.Players, PlayerInfo{UserID: userID, Position: pos, TeamID: team})
	t := next.Teams[team]
	t.PlayerIDs = append(t.PlayerIDs, userID)
	next.Teams[team] = t
	if len(next.Players) == numSeats {
		next.Status = StatusStarting
	}
	return next, nil
}

func (s MatchState) playerByID(id string) (PlayerInfo, error) {
	for _, p := range s.Players {
		if p.UserID == id {
			return p, nil
		}
	}
	return PlayerInfo{}, ErrPlayerNotFound
}

// clone deep-copies the state so Apply never aliases the caller's maps and
// slices.
func (s MatchState) clone() MatchState {
	next := s
	next.Players = append([]PlayerInfo(nil), s.Players...)
	next.Teams = make(map[TeamID]Team, len(s.Teams))
	for id, t := range s.Teams {
		t.PlayerIDs = append([]string(nil), t.PlayerIDs...)
		next.Teams[id] = t
	}
	if s.Round != nil {
		r := *s.Round
		r.Hands = make(map[string][]Card, len(s.Round.Hands))
		for id, h := range s.Round.Hands {
			r.Hands[id] = append([]Card(nil), h...)
		}
		r.Bids = append([]Bid(nil), s.Round.Bids...)
		if s.Round.HighestBid != nil {
			hb := *s.Round.HighestBid
			r.HighestBid = &hb
		}
		if s.Round.TrumpSuit != nil {
			ts := *s.Round.TrumpSuit
			r.TrumpSuit = &ts
		}
		r.CurrentTrick = append([]PlayedCard(nil), s.Round.CurrentTrick...)
		r.CompletedTricks = append([]Trick(nil), s.Round.CompletedTricks...)
		r.TeamTricks = map[TeamID]int{Team1: s.Round.TeamTricks[Team1], Team2: s.Round.TeamTricks[Team2]}
		r.RoundScores = map[TeamID]int{Team1: s.Round.RoundScores[Team1], Team2: s.Round.RoundScores[Team2]}
		next.Round = &r
	}
	return next
}

// cardConservation verifies that every card of the 52 is accounted for
// exactly once across hands, the open trick, and completed tricks. Called at
// phase boundaries once the full deal is out.
func (r *RoundState) cardConservation() error {
	seen := map[string]bool{}
	count := 0
	add := func(c Card) error {
		id := c.ID()
		if seen[id] {
			return ErrDeckCorruption
		}
		seen[id] = true
		count++
		return nil
	}
	for _, hand := range r.Hands {
		for _, c := range hand {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	for _, pc := range r.CurrentTrick {
		if err := add(pc.Card); err != nil {
			return err
		}
	}
	for _, t := range r.CompletedTricks {
		for _, pc := range t.Cards {
			if err := add(pc.Card); err != nil {
				return err
			}
		}
	}
	if count != 52 {
		return ErrDeckCorruption
	}
	return nil
}
