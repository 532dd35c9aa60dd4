package types

import "github.com/jmreyes/dicesheet-backend/internal/engine"

// ClientMessage is one input event from the sheet UI.
type ClientMessage struct {
	Type  string `json:"type"`
	Round int    `json:"round,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	On    bool   `json:"on,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SheetSnapshot is the full read model pushed to the UI after every applied
// mutation. RowTotals, AllLocked and GameTotal are derived server-side so
// the presentation layer never recomputes scores.
type SheetSnapshot struct {
	Rounds          []engine.Round `json:"rounds"`
	ActiveRound     int            `json:"activeRound"`
	DefaultRedCount int            `json:"defaultRedCount"`
	PlayerName      string         `json:"playerName"`
	GlitterBlue     bool           `json:"glitterBlue"`
	RowTotals       []int          `json:"rowTotals"`
	AllLocked       bool           `json:"allLocked"`
	GameTotal       int            `json:"gameTotal"`
}

type ServerMessage struct {
	Type     string         `json:"type"` // "StateSnapshot" | "Error"
	Version  int            `json:"version,omitempty"`
	Snapshot *SheetSnapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}
