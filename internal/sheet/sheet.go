package sheet

import (
	"context"

	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/engine"
	"github.com/jmreyes/dicesheet-backend/internal/session"
)

type Msg interface{ isSheetMsg() }

// Op is one state-transition request against the sheet's session. Ops that
// the gating policy rejects leave the session untouched and are absorbed
// silently; there is no error path for a disallowed edit.
type Op interface{ isOp() }

type EditField struct {
	Round int
	Field engine.Field
	Value string
}

type CompleteRound struct{}

type SetDefaultRedCount struct{ Value string }

type SetGlitterBlue struct{ On bool }

type SetPlayerName struct{ Name string }

// ResetGame discards the whole session for a fresh one. Any confirmation
// step belongs in the UI before the message is ever sent.
type ResetGame struct{}

func (EditField) isOp()          {}
func (CompleteRound) isOp()      {}
func (SetDefaultRedCount) isOp() {}
func (SetGlitterBlue) isOp()     {}
func (SetPlayerName) isOp()      {}
func (ResetGame) isOp()          {}

type FromClient struct {
	Op Op
}

func (FromClient) isSheetMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSheetMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSheetMsg() {}

type Shutdown struct{}

func (Shutdown) isSheetMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSheetMsg() {}

type Snapshot struct {
	Version int
	State   session.Session
}

type View struct {
	Version    int
	NumClients int
	State      session.Session
}

// Saver persists the serialized sheet after every applied mutation. The
// actor invokes it with the fully-reduced session, never an intermediate.
type Saver interface {
	Save(ctx context.Context, code string, blob []byte) error
}

// Sheet is an actor owning one live score sheet. All session access goes
// through the inbox, so ops apply one at a time, start to finish.
type Sheet struct {
	code    string
	inbox   chan Msg
	state   session.Session
	version int
	clients map[string]chan Snapshot
	saver   Saver
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, code string, initial session.Session, saver Saver, log *zap.Logger) *Sheet {
	ctx, cancel := context.WithCancel(parent)

	sh := &Sheet{
		code:    code,
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		saver:   saver,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go sh.loop()
	return sh
}

func (sh *Sheet) loop() {
	for {
		select {
		case <-sh.ctx.Done():
			sh.shutdown()
			return

		case m := <-sh.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				sh.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: sh.version, State: sh.state}

			case Leave:
				delete(sh.clients, msg.ClientID)

			case FromClient:
				next := apply(sh.state, msg.Op)
				if next == sh.state {
					// Gated or no-op edit: nothing changed, nothing to say.
					break
				}
				sh.state = next
				sh.version++
				sh.persist()
				sh.broadcast(Snapshot{Version: sh.version, State: sh.state})

			case GetState:
				// test-only: reflect internal state without data races
				msg.Reply <- View{
					Version:    sh.version,
					NumClients: len(sh.clients),
					State:      sh.state,
				}

			case Shutdown:
				sh.shutdown()
				return
			}
		}
	}
}

// apply routes one op to the matching session operation. Unknown ops fall
// through unchanged.
func apply(s session.Session, op Op) session.Session {
	switch op := op.(type) {
	case EditField:
		return session.SetField(s, op.Round, op.Field, op.Value)
	case CompleteRound:
		return session.CompleteActiveRound(s)
	case SetDefaultRedCount:
		return session.SetDefaultRedCount(s, op.Value)
	case SetGlitterBlue:
		return session.SetGlitterBlue(s, op.On)
	case SetPlayerName:
		return session.SetPlayerName(s, op.Name)
	case ResetGame:
		return session.New()
	default:
		return s
	}
}

func (sh *Sheet) persist() {
	if sh.saver == nil {
		return
	}
	blob, err := session.Marshal(sh.state)
	if err != nil {
		sh.log.Warn("marshal sheet", zap.String("code", sh.code), zap.Error(err))
		return
	}
	if err := sh.saver.Save(sh.ctx, sh.code, blob); err != nil {
		// Saving is best effort; the live session stays authoritative.
		sh.log.Warn("save sheet", zap.String("code", sh.code), zap.Error(err))
	}
}

func (sh *Sheet) shutdown() {
	for id, ch := range sh.clients {
		close(ch) // Tell client no more snapshots
		delete(sh.clients, id)
	}
	sh.cancel()
}

func (sh *Sheet) broadcast(snap Snapshot) {
	for id, ch := range sh.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(sh.clients, id)
		}
	}
}

// Expose the inbox so tests or the WS layer can send messages.
func (sh *Sheet) Inbox() chan<- Msg { return sh.inbox }
