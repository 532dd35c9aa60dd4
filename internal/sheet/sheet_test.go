package sheet

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/engine"
	"github.com/jmreyes/dicesheet-backend/internal/session"
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

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
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

// recordingSaver counts saves so tests can assert the save-after-mutation
// contract without a real database.
type recordingSaver struct {
	mu    sync.Mutex
	blobs [][]byte
}

func (r *recordingSaver) Save(_ context.Context, _ string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs = append(r.blobs, blob)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blobs)
}

func (r *recordingSaver) last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.blobs) == 0 {
		return nil
	}
	return r.blobs[len(r.blobs)-1]
}

func TestSheet_Edit_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := New(ctx, "AAAAAA", session.New(), nil, zap.NewNop())

	clientOut := make(chan Snapshot, 2) // small buffer so broadcast doesn’t block
	sh.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}

	// on join, the sheet should immediately send the current snapshot
	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}
	if first.State.Rounds[0].Yellow != 0 {
		t.Fatalf("after join: expected a blank sheet, got %+v", first.State.Rounds[0])
	}

	sh.Inbox() <- FromClient{Op: EditField{Round: 0, Field: engine.FieldYellow, Value: "5"}}

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if next.Version != 1 {
		t.Fatalf("after edit: want version=1, got %d", next.Version)
	}
	if next.State.Rounds[0].Yellow != 5 {
		t.Fatalf("after edit: want yellow=5, got %+v", next.State.Rounds[0])
	}

	sh.Inbox() <- Shutdown{}
}

func TestSheet_GatedEdit_NoBroadcastNoSave(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saver := &recordingSaver{}
	sh := New(ctx, "AAAAAA", session.New(), saver, zap.NewNop())

	clientOut := make(chan Snapshot, 2)
	sh.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}
	_ = recvSnapshot(t, clientOut, 100*time.Millisecond) // drain join snapshot

	// Round 0 only allows yellow; this edit is silently absorbed.
	sh.Inbox() <- FromClient{Op: EditField{Round: 0, Field: engine.FieldPurple, Value: "5"}}
	recvNoSnapshot(t, clientOut, 100*time.Millisecond)

	reply := make(chan View, 1)
	sh.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.Version != 0 {
		t.Fatalf("gated edit bumped the version: %d", view.Version)
	}
	if saver.count() != 0 {
		t.Fatalf("gated edit reached the saver %d times", saver.count())
	}
}

func TestSheet_SavesFullyReducedStateAfterEachMutation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saver := &recordingSaver{}
	sh := New(ctx, "AAAAAA", session.New(), saver, zap.NewNop())

	sh.Inbox() <- FromClient{Op: EditField{Round: 0, Field: engine.FieldYellow, Value: "5"}}
	sh.Inbox() <- FromClient{Op: SetDefaultRedCount{Value: "2"}}
	sh.Inbox() <- FromClient{Op: CompleteRound{}}

	reply := make(chan View, 1)
	sh.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.Version != 3 {
		t.Fatalf("want version=3 after three applied ops, got %d", view.Version)
	}
	if saver.count() != 3 {
		t.Fatalf("want 3 saves, got %d", saver.count())
	}

	restored := session.Restore(saver.last())
	if !restored.Rounds[0].Locked || restored.Rounds[0].Yellow != 5 || restored.Rounds[0].RedCount != 2 {
		t.Fatalf("persisted state is not the fully-reduced session: %+v", restored.Rounds[0])
	}
}

func TestSheet_ResetGame_ReplacesSessionWholesale(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := New(ctx, "AAAAAA", session.New(), nil, zap.NewNop())

	sh.Inbox() <- FromClient{Op: EditField{Round: 0, Field: engine.FieldYellow, Value: "5"}}
	sh.Inbox() <- FromClient{Op: CompleteRound{}}
	sh.Inbox() <- FromClient{Op: ResetGame{}}

	reply := make(chan View, 1)
	sh.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.State != session.New() {
		t.Fatalf("reset did not produce a fresh session: %+v", view.State)
	}
}

func TestSheet_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := New(ctx, "AAAAAA", session.New(), nil, zap.NewNop())

	clientOut := make(chan Snapshot, 1)
	sh.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}

	// The join snapshot fills the buffer; the next broadcast can't be
	// delivered and the client gets dropped.
	sh.Inbox() <- FromClient{Op: EditField{Round: 0, Field: engine.FieldYellow, Value: "5"}}

	reply := make(chan View, 1)
	sh.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}
