package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/match"
	"github.com/rangvaar/rangvaar-backend/internal/store"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func recvErr(t *testing.T, ch <-chan error, within time.Duration) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(within):
		t.Fatalf("timed out waiting for command reply")
		return nil // unreachable
	}
}

// seatedService creates a match with four seated players ready to bid.
func seatedService(t *testing.T) (*match.Service, string) {
	t.Helper()
	svc := match.NewService(store.NewMemory(), engine.New(nil), nil)
	ctx := context.Background()
	if _, err := svc.Create(ctx, "M1", 3); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, id := range []string{"p0", "p1", "p2", "p3"} {
		if _, err := svc.Join(ctx, "M1", id); err != nil {
			t.Fatalf("Join(%s): %v", id, err)
		}
	}
	return svc, "M1"
}

func TestLobby_JoinSendsCurrentSnapshot(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	out := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}

	first := recvSnapshot(t, out, 500*time.Millisecond)
	if first.State.Status != engine.StatusPlaying {
		t.Fatalf("after join: want playing match, got %s", first.State.Status)
	}
	if first.State.Round.Phase != engine.PhaseBidding {
		t.Fatalf("after join: want bidding phase, got %s", first.State.Round.Phase)
	}
}

func TestLobby_Bid_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	out := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}
	first := recvSnapshot(t, out, 500*time.Millisecond)

	reply := make(chan error, 1)
	l.Inbox() <- FromClient{
		Cmd:   engine.Command{Type: engine.CmdSubmitBid, PlayerID: "p1", Amount: 7},
		Reply: reply,
	}
	if err := recvErr(t, reply, 500*time.Millisecond); err != nil {
		t.Fatalf("bid rejected: %v", err)
	}

	next := recvSnapshot(t, out, 500*time.Millisecond)
	if next.Version != first.Version+1 {
		t.Fatalf("after bid: want version %d, got %d", first.Version+1, next.Version)
	}
	if next.State.Round.HighestBid == nil || next.State.Round.HighestBid.Amount != 7 {
		t.Fatalf("after bid: want highest bid 7, got %+v", next.State.Round.HighestBid)
	}

	l.Inbox() <- Shutdown{}
}

func TestLobby_RuleErrorRepliesWithoutBroadcast(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	out := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 500*time.Millisecond)

	reply := make(chan error, 1)
	l.Inbox() <- FromClient{
		Cmd:   engine.Command{Type: engine.CmdSubmitBid, PlayerID: "p3", Amount: 7},
		Reply: reply,
	}
	err := recvErr(t, reply, 500*time.Millisecond)
	if err == nil {
		t.Fatalf("expected out-of-turn bid to be rejected")
	}

	view := make(chan View, 1)
	l.Inbox() <- GetState{Reply: view}
	v := recvView(t, view, 500*time.Millisecond)
	if v.State.Round.HighestBid != nil {
		t.Fatalf("rejected bid must not change state, got %+v", v.State.Round.HighestBid)
	}
}

func TestLobby_DropSlowClient(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	// Buffer of 1 is filled by the join snapshot; the next broadcast drops us.
	out := make(chan Snapshot, 1)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}

	l.Inbox() <- FromClient{
		Cmd: engine.Command{Type: engine.CmdSubmitBid, PlayerID: "p1", Amount: 7},
	}

	view := make(chan View, 1)
	l.Inbox() <- GetState{Reply: view}
	v := recvView(t, view, 500*time.Millisecond)
	if v.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", v.NumClients)
	}
}

func TestLobby_NotifyCommitBroadcastsNewerVersionOnly(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	out := make(chan Snapshot, 4)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}
	first := recvSnapshot(t, out, 500*time.Millisecond)

	// Stale notification: nothing should arrive.
	l.NotifyCommit(match.Snapshot{Version: first.Version, State: first.State})
	select {
	case s := <-out:
		t.Fatalf("stale notify must not broadcast, got version %d", s.Version)
	case <-time.After(200 * time.Millisecond):
	}

	newer := match.Snapshot{Version: first.Version + 5, State: first.State}
	l.NotifyCommit(newer)
	next := recvSnapshot(t, out, 500*time.Millisecond)
	if next.Version != newer.Version {
		t.Fatalf("want version %d, got %d", newer.Version, next.Version)
	}
}

func TestLobby_Shutdown_ClosesClientChannels(t *testing.T) {
	svc, matchID := seatedService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLobby(ctx, svc, matchID, nil)

	out := make(chan Snapshot, 2)
	l.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 500*time.Millisecond)

	l.Inbox() <- Shutdown{}
	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed channel after shutdown")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for channel close")
	}
}
