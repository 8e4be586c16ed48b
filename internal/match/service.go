package match

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/store"
)

// Snapshot is the versioned result of an accepted operation.
type Snapshot struct {
	Version int
	State   engine.MatchState
	Events  []engine.Event
}

// Service drives matches through the optimistic read-validate-commit loop:
// load the current snapshot, validate the action against it with the engine,
// commit only if the stored version is unchanged. A losing commit surfaces
// store.ErrVersionConflict and the caller retries from a fresh read, so at
// most one action is accepted per turn.
type Service struct {
	store  store.MatchStore
	engine *engine.Engine
	log    *zap.Logger
}

func NewService(st store.MatchStore, eng *engine.Engine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, engine: eng, log: log}
}

// Create persists a fresh match waiting for players.
func (s *Service) Create(ctx context.Context, matchID string, totalRounds int) (Snapshot, error) {
	state := engine.NewMatch(totalRounds)
	version, err := s.store.Create(ctx, matchID, state)
	if err != nil {
		return Snapshot{}, err
	}
	s.log.Info("match created",
		zap.String("match_id", matchID),
		zap.Int("total_rounds", state.TotalRounds))
	return Snapshot{Version: version, State: state}, nil
}

// Load returns the current snapshot without acting on it.
func (s *Service) Load(ctx context.Context, matchID string) (Snapshot, error) {
	state, version, err := s.store.Load(ctx, matchID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Version: version, State: state}, nil
}

// Join seats a player. Filling the fourth seat starts round one.
func (s *Service) Join(ctx context.Context, matchID, userID string) (Snapshot, error) {
	state, version, err := s.store.Load(ctx, matchID)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := engine.AddPlayer(state, userID)
	if err != nil {
		return Snapshot{}, err
	}
	newVersion, err := s.store.Commit(ctx, matchID, version, next)
	if err != nil {
		return Snapshot{}, err
	}
	s.log.Info("player joined",
		zap.String("match_id", matchID),
		zap.String("player_id", userID),
		zap.Int("seat", len(next.Players)-1),
		zap.Int("version", newVersion))
	snap := Snapshot{Version: newVersion, State: next}
	if next.Status == engine.StatusStarting {
		return s.advance(ctx, matchID, snap)
	}
	return snap, nil
}

// SubmitBid records a bid or pass for the player on turn.
func (s *Service) SubmitBid(ctx context.Context, matchID, playerID string, amount int, pass bool) (Snapshot, error) {
	return s.Submit(ctx, matchID, engine.Command{
		Type:     engine.CmdSubmitBid,
		PlayerID: playerID,
		Amount:   amount,
		Pass:     pass,
	})
}

// SelectTrump sets the round's trump suit; only the auction winner may.
func (s *Service) SelectTrump(ctx context.Context, matchID, playerID string, suit engine.Suit) (Snapshot, error) {
	return s.Submit(ctx, matchID, engine.Command{
		Type:     engine.CmdSelectTrump,
		PlayerID: playerID,
		Suit:     suit,
	})
}

// PlayCard lays a card into the current trick.
func (s *Service) PlayCard(ctx context.Context, matchID, playerID string, card engine.Card) (Snapshot, error) {
	return s.Submit(ctx, matchID, engine.Command{
		Type:     engine.CmdPlayCard,
		PlayerID: playerID,
		Card:     card,
	})
}

// Submit runs one player command through a single load-apply-commit pass,
// then drives any follow-up transitions the new state calls for.
func (s *Service) Submit(ctx context.Context, matchID string, cmd engine.Command) (Snapshot, error) {
	switch cmd.Type {
	case engine.CmdSubmitBid, engine.CmdSelectTrump, engine.CmdPlayCard:
	default:
		return Snapshot{}, engine.ErrUnsupportedCommand
	}
	snap, err := s.applyOnce(ctx, matchID, cmd)
	if err != nil {
		return Snapshot{}, err
	}
	return s.advance(ctx, matchID, snap)
}

func (s *Service) applyOnce(ctx context.Context, matchID string, cmd engine.Command) (Snapshot, error) {
	state, version, err := s.store.Load(ctx, matchID)
	if err != nil {
		return Snapshot{}, err
	}
	events, next, err := s.engine.Apply(state, cmd)
	if err != nil {
		if errors.Is(err, engine.ErrDeckCorruption) {
			return Snapshot{}, s.abort(ctx, matchID, version, state, err)
		}
		return Snapshot{}, err
	}
	newVersion, err := s.store.Commit(ctx, matchID, version, next)
	if err != nil {
		return Snapshot{}, err
	}
	phase := ""
	if next.Round != nil {
		phase = string(next.Round.Phase)
	}
	s.log.Info("command applied",
		zap.String("match_id", matchID),
		zap.String("command", string(cmd.Type)),
		zap.String("player_id", cmd.PlayerID),
		zap.String("phase", phase),
		zap.Int("version", newVersion))
	return Snapshot{Version: newVersion, State: next, Events: events}, nil
}

// advance applies the transitions the orchestrator owns: the first-round
// deal, the completion deal after trump selection, and the next round after
// one ends. Each is its own committed step so every phase is observable in
// the stored history. A conflict here means another host instance performed
// the step; reload and continue.
func (s *Service) advance(ctx context.Context, matchID string, snap Snapshot) (Snapshot, error) {
	for {
		cmd, ok := pendingTransition(snap.State)
		if !ok {
			return snap, nil
		}
		next, err := s.applyOnce(ctx, matchID, cmd)
		switch {
		case err == nil:
			snap.Version = next.Version
			snap.State = next.State
			snap.Events = append(snap.Events, next.Events...)
		case errors.Is(err, store.ErrVersionConflict):
			fresh, err := s.Load(ctx, matchID)
			if err != nil {
				return Snapshot{}, err
			}
			snap.Version = fresh.Version
			snap.State = fresh.State
		default:
			return Snapshot{}, err
		}
	}
}

func pendingTransition(state engine.MatchState) (engine.Command, bool) {
	if state.Status == engine.StatusStarting {
		return engine.Command{Type: engine.CmdStartRound}, true
	}
	if state.Status != engine.StatusPlaying || state.Round == nil {
		return engine.Command{}, false
	}
	switch state.Round.Phase {
	case engine.PhaseDealingRest:
		return engine.Command{Type: engine.CmdDealRest}, true
	case engine.PhaseRoundEnded:
		if state.RoundNumber < state.TotalRounds {
			return engine.Command{Type: engine.CmdStartRound}, true
		}
	}
	return engine.Command{}, false
}

// abort cancels a match whose deck invariant failed. The round must not
// progress on a corrupted deck; cancelling is best effort and the original
// error is always returned.
func (s *Service) abort(ctx context.Context, matchID string, version int, state engine.MatchState, cause error) error {
	s.log.Error("aborting match",
		zap.String("match_id", matchID),
		zap.Error(cause))
	state.Status = engine.StatusCancelled
	if _, err := s.store.Commit(ctx, matchID, version, state); err != nil {
		return fmt.Errorf("cancel match %s: %w (after: %w)", matchID, err, cause)
	}
	return cause
}
