package session

import (
	"encoding/json"

	"github.com/jmreyes/dicesheet-backend/internal/engine"
)

// Restore rebuilds a Session from a persisted snapshot blob. The decode is
// tolerant field by field: an absent or malformed field falls back to its
// fresh-session default instead of failing the whole load, so the worst a
// corrupted snapshot can do is blank out the part of the sheet it corrupted.
func Restore(blob []byte) Session {
	s := New()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return s
	}

	if data, ok := raw["rounds"]; ok {
		var rounds []engine.Round
		if err := json.Unmarshal(data, &rounds); err == nil {
			for i := 0; i < len(rounds) && i < NumRounds; i++ {
				s.Rounds[i] = rounds[i]
			}
		}
	}
	if data, ok := raw["activeRound"]; ok {
		var idx int
		if err := json.Unmarshal(data, &idx); err == nil {
			if idx < 0 {
				idx = 0
			}
			if idx > lastRound {
				idx = lastRound
			}
			s.ActiveRound = idx
		}
	}
	if data, ok := raw["defaultRedCount"]; ok {
		var n int
		if err := json.Unmarshal(data, &n); err == nil {
			if n < 0 {
				n = 0
			}
			if n > MaxRedCount {
				n = MaxRedCount
			}
			s.DefaultRedCount = n
		}
	}
	if data, ok := raw["glitterBlue"]; ok {
		var on bool
		if err := json.Unmarshal(data, &on); err == nil {
			s.GlitterBlue = on
		}
	}
	if data, ok := raw["playerName"]; ok {
		var name string
		if err := json.Unmarshal(data, &name); err == nil && name != "" {
			s.PlayerName = name
		}
	}

	return s
}

// Marshal serializes the session for persistence. Restore accepts exactly
// this shape.
func Marshal(s Session) ([]byte, error) {
	return json.Marshal(s)
}
