package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmreyes/dicesheet-backend/internal/export"
	"github.com/jmreyes/dicesheet-backend/internal/hub"
	"github.com/jmreyes/dicesheet-backend/internal/session"
	"github.com/jmreyes/dicesheet-backend/internal/sheet"
	"github.com/jmreyes/dicesheet-backend/internal/ws"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateSheet mints a fresh score sheet under a new code.
func CreateSheet(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *sheet.Sheet, 1)
			h.Inbox() <- hub.GetSheet{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			fmt.Println("collision on code, regenerating")
		}

		reply := make(chan *sheet.Sheet, 1)
		h.Inbox() <- hub.EnsureSheet{Code: code, State: session.New(), Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create sheet", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// ExportCSV serves the sheet as a CSV download. A live sheet is read through
// its actor; a dormant one is restored straight from the store. Export never
// mutates anything, so there is no need to spin the actor up for it.
func ExportCSV(h *hub.Hub, loader ws.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		var s session.Session
		reply := make(chan *sheet.Sheet, 1)
		h.Inbox() <- hub.GetSheet{Code: code, Reply: reply}
		if sh := <-reply; sh != nil {
			viewReply := make(chan sheet.View, 1)
			sh.Inbox() <- sheet.GetState{Reply: viewReply}
			s = (<-viewReply).State
		} else {
			blob, found, err := loader.Load(r.Context(), code)
			if err != nil {
				http.Error(w, "failed to load sheet", http.StatusInternalServerError)
				return
			}
			if !found {
				http.Error(w, "sheet not found", http.StatusNotFound)
				return
			}
			s = session.Restore(blob)
		}

		csv := export.BuildCSV(s.Rounds[:], s.GlitterBlue, session.GameTotal(s))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", code+".csv"))
		_, _ = w.Write([]byte(csv))
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
