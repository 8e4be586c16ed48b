package lobby

import (
	"context"

	"go.uber.org/zap"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
	"github.com/rangvaar/rangvaar-backend/internal/match"
)

type Msg interface{ isLobbyMsg() }

// FromClient carries one player intent. Reply, if set, receives the result
// of the command (nil on success) so the transport can report rule errors
// back to just that client.
type FromClient struct {
	Cmd   engine.Command
	Reply chan error
}

func (FromClient) isLobbyMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type Snapshot struct {
	Version int
	State   engine.MatchState
}

type View struct {
	Version    int
	NumClients int
	State      engine.MatchState
}

type externalCommit struct{ Snap match.Snapshot }

func (externalCommit) isLobbyMsg() {}

// Lobby is the per-match room actor: it serializes intents for one match,
// pushes every accepted commit to connected clients, and drops clients that
// fall behind. Match state itself lives in the store behind the service;
// the lobby only remembers the last snapshot it broadcast.
type Lobby struct {
	inbox   chan Msg
	svc     *match.Service
	matchID string
	last    Snapshot
	clients map[string]chan Snapshot
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.Logger
}

func NewLobby(parent context.Context, svc *match.Service, matchID string, log *zap.Logger) *Lobby {
	ctx, cancel := context.WithCancel(parent)
	if log == nil {
		log = zap.NewNop()
	}
	l := &Lobby{
		inbox:   make(chan Msg, 64),
		svc:     svc,
		matchID: matchID,
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}
	go l.loop()
	return l
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				snap, err := l.refresh()
				if err != nil {
					l.log.Warn("join refresh failed",
						zap.String("match_id", l.matchID),
						zap.Error(err))
					close(msg.Outbox)
					break
				}
				l.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- snap

			case Leave:
				delete(l.clients, msg.ClientID)

			case FromClient:
				snap, err := l.svc.Submit(l.ctx, l.matchID, msg.Cmd)
				if msg.Reply != nil {
					select {
					case msg.Reply <- err:
					default:
					}
				}
				if err != nil {
					break
				}
				l.last = Snapshot{Version: snap.Version, State: snap.State}
				l.broadcast(l.last)

			case externalCommit:
				if msg.Snap.Version <= l.last.Version {
					break
				}
				l.last = Snapshot{Version: msg.Snap.Version, State: msg.Snap.State}
				l.broadcast(l.last)

			case GetState:
				msg.Reply <- View{
					Version:    l.last.Version,
					NumClients: len(l.clients),
					State:      l.last.State,
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// NotifyCommit lets out-of-band writers (the HTTP join endpoint) push a
// fresh snapshot into the room for broadcast.
func (l *Lobby) NotifyCommit(snap match.Snapshot) {
	select {
	case l.inbox <- externalCommit{Snap: snap}:
	case <-l.ctx.Done():
	}
}

func (l *Lobby) refresh() (Snapshot, error) {
	snap, err := l.svc.Load(l.ctx, l.matchID)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Version >= l.last.Version {
		l.last = Snapshot{Version: snap.Version, State: snap.State}
	}
	return l.last, nil
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more snapshots
		delete(l.clients, id)
	}
	l.cancel()
}

func (l *Lobby) broadcast(snap Snapshot) {
	for id, ch := range l.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(l.clients, id)
		}
	}
}

// Expose the inbox so tests or the WS layer can send messages.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }
