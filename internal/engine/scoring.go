package engine

// Contract is the winning bid the round was played under.
type Contract struct {
	PlayerID string
	TeamID   TeamID
	Amount   int
}

// RoundResult is a scoring policy's verdict for one round.
type RoundResult struct {
	Scores         map[TeamID]int
	PenaltyApplied bool
}

// ScoringPolicy turns a finished round's trick counts into team scores.
// Hosts inject their own table rules here; the engine only requires that
// both teams receive a score.
type ScoringPolicy interface {
	Score(contract Contract, tricks map[TeamID]int) RoundResult
}

// HouseScoring is the default table rule: the bidding team keeps its tricks
// if the contract was met and forfeits the bid amount if not; the defending
// team always keeps its tricks.
type HouseScoring struct{}

func (HouseScoring) Score(contract Contract, tricks map[TeamID]int) RoundResult {
	scores := map[TeamID]int{
		Team1: tricks[Team1],
		Team2: tricks[Team2],
	}
	penalty := false
	if tricks[contract.TeamID] < contract.Amount {
		scores[contract.TeamID] = -contract.Amount
		penalty = true
	}
	return RoundResult{Scores: scores, PenaltyApplied: penalty}
}

// closeRound settles the 13th trick: applies the scoring policy, folds the
// round scores into the cumulative team totals, and either finishes the
// match or leaves it in RoundEnded for the host to start the next round.
func (e *Engine) closeRound(s *MatchState) ([]Event, error) {
	round := s.Round
	bidder, err := s.playerByID(round.HighestBid.PlayerID)
	if err != nil {
		return nil, err
	}
	contract := Contract{
		PlayerID: bidder.UserID,
		TeamID:   bidder.TeamID,
		Amount:   round.HighestBid.Amount,
	}
	result := e.scoring.Score(contract, round.TeamTricks)
	round.RoundScores = map[TeamID]int{
		Team1: result.Scores[Team1],
		Team2: result.Scores[Team2],
	}
	round.PenaltyApplied = result.PenaltyApplied
	round.Phase = PhaseRoundEnded
	round.TurnPlayerID = ""

	for _, id := range []TeamID{Team1, Team2} {
		t := s.Teams[id]
		t.CumulativeScore += round.RoundScores[id]
		s.Teams[id] = t
	}
	events := []Event{{Type: EvtRoundEnded, Round: round.Number}}

	if s.RoundNumber >= s.TotalRounds {
		s.Status = StatusFinished
		// A strictly higher cumulative score wins; equal scores leave the
		// match drawn with no winner.
		switch {
		case s.Teams[Team1].CumulativeScore > s.Teams[Team2].CumulativeScore:
			s.WinnerTeamID = Team1
		case s.Teams[Team2].CumulativeScore > s.Teams[Team1].CumulativeScore:
			s.WinnerTeamID = Team2
		}
		events = append(events, Event{Type: EvtMatchFinished, TeamID: s.WinnerTeamID})
	}
	return events, nil
}
