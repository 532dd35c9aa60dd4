package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/jmreyes/dicesheet-backend/internal/engine"
	"github.com/jmreyes/dicesheet-backend/internal/hub"
	"github.com/jmreyes/dicesheet-backend/internal/session"
	"github.com/jmreyes/dicesheet-backend/internal/sheet"
	"github.com/jmreyes/dicesheet-backend/internal/types"
)

// Loader reads a previously persisted sheet snapshot.
type Loader interface {
	Load(ctx context.Context, code string) ([]byte, bool, error)
}

// Handler upgrades the connection, ensures the sheet actor exists (restoring
// it from the store when the process was restarted mid-game), and then
// shuttles client messages in and snapshots out until the socket closes.
func Handler(h *hub.Hub, loader Loader, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		initial := session.New()
		if blob, found, err := loader.Load(r.Context(), code); err != nil {
			log.Warn("load sheet", zap.String("code", code), zap.Error(err))
		} else if found {
			initial = session.Restore(blob)
		}

		reply := make(chan *sheet.Sheet, 1)
		h.Inbox() <- hub.EnsureSheet{Code: code, State: initial, Reply: reply}
		sh := <-reply
		if sh == nil {
			http.Error(w, "sheet not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan sheet.Snapshot, 8)
		clientID := randID(6)

		sh.Inbox() <- sheet.Join{ClientID: clientID, Outbox: out}
		defer func() { sh.Inbox() <- sheet.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, Snapshot: wireSnapshot(snap.State)}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (sheet.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}

			op, ok := toOp(cm)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText, []byte(`{"type":"Error","error":"unknown type"}`))
				continue
			}

			sh.Inbox() <- sheet.FromClient{Op: op}
		}
	}
}

// wireSnapshot flattens a session into the read model the UI consumes.
func wireSnapshot(s session.Session) *types.SheetSnapshot {
	totals := session.RowTotals(s)
	return &types.SheetSnapshot{
		Rounds:          s.Rounds[:],
		ActiveRound:     s.ActiveRound,
		DefaultRedCount: s.DefaultRedCount,
		PlayerName:      s.PlayerName,
		GlitterBlue:     s.GlitterBlue,
		RowTotals:       totals[:],
		AllLocked:       session.AllLocked(s),
		GameTotal:       session.GameTotal(s),
	}
}

func toOp(m types.ClientMessage) (sheet.Op, bool) {
	switch m.Type {
	case "SetField":
		f, ok := parseField(m.Field)
		if !ok {
			return nil, false
		}
		return sheet.EditField{Round: m.Round, Field: f, Value: m.Value}, true
	case "CompleteRound":
		return sheet.CompleteRound{}, true
	case "SetDefaultRedCount":
		return sheet.SetDefaultRedCount{Value: m.Value}, true
	case "SetGlitterBlue":
		return sheet.SetGlitterBlue{On: m.On}, true
	case "SetPlayerName":
		return sheet.SetPlayerName{Name: m.Name}, true
	case "ResetGame":
		return sheet.ResetGame{}, true
	default:
		return nil, false
	}
}

func parseField(name string) (engine.Field, bool) {
	f := engine.Field(name)
	for _, known := range engine.Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
