package session

import "github.com/jmreyes/dicesheet-backend/internal/engine"

// NumRounds is the fixed length of a score sheet.
const NumRounds = 10

// MaxRedCount caps the shared default red-dice count.
const MaxRedCount = 99

// DefaultPlayerName labels a fresh sheet until the player renames it.
const DefaultPlayerName = "Player 1"

const lastRound = NumRounds - 1

// Session is the full state of one score sheet. Every operation below is
// value in, value out: callers replace their copy with the returned one, so
// a disallowed edit simply hands back the input unchanged.
type Session struct {
	Rounds          [NumRounds]engine.Round `json:"rounds"`
	ActiveRound     int                     `json:"activeRound"`
	DefaultRedCount int                     `json:"defaultRedCount"`
	GlitterBlue     bool                    `json:"glitterBlue"`
	PlayerName      string                  `json:"playerName"`
}

// New returns a fresh sheet: ten blank unlocked rounds, round 0 active,
// default red count 0, glitter blue off.
func New() Session {
	return Session{PlayerName: DefaultPlayerName}
}

// SetField edits one dice-color field on one round. Three gates apply, in
// order: the round must be unlocked, it must be the active round, and on
// round 0 only the yellow field is editable. A gated edit returns the
// session unchanged; gating failures are never errors.
func SetField(s Session, idx int, field engine.Field, raw string) Session {
	if idx < 0 || idx >= NumRounds {
		return s
	}
	if s.Rounds[idx].Locked {
		return s
	}
	if idx != s.ActiveRound {
		return s
	}
	if idx == 0 && field != engine.FieldYellow {
		return s
	}
	s.Rounds[idx] = engine.ApplyFieldEdit(s.Rounds[idx], field, raw)
	return s
}

// CompleteActiveRound locks the active round, snapshotting the session's
// current default red count into it, then advances the active index.
// Advancing never passes the last round: completing round 10 leaves the
// index at 9, and since round 9 is then locked no round remains editable.
func CompleteActiveRound(s Session) Session {
	if s.ActiveRound < 0 || s.ActiveRound >= NumRounds {
		return s
	}
	s.Rounds[s.ActiveRound] = engine.Lock(s.Rounds[s.ActiveRound], s.DefaultRedCount)
	if s.ActiveRound < lastRound {
		s.ActiveRound++
	}
	return s
}

// SetDefaultRedCount coerces raw through the shared numeric rule and clamps
// to [0, MaxRedCount]. The new value only materializes into a round at the
// next CompleteActiveRound; already-locked rounds keep their snapshot.
func SetDefaultRedCount(s Session, raw string) Session {
	n := engine.Coerce(raw)
	if n < 0 {
		n = 0
	}
	if n > MaxRedCount {
		n = MaxRedCount
	}
	s.DefaultRedCount = n
	return s
}

// SetGlitterBlue flips the session-wide blue multiplier. It applies
// retroactively to every round's displayed total since the weight is read
// at scoring time, never stored per round.
func SetGlitterBlue(s Session, on bool) Session {
	s.GlitterBlue = on
	return s
}

// SetPlayerName replaces the cosmetic sheet label. No gating.
func SetPlayerName(s Session, name string) Session {
	s.PlayerName = name
	return s
}

// RowTotals computes the current score of every round.
func RowTotals(s Session) [NumRounds]int {
	var totals [NumRounds]int
	for i, r := range s.Rounds {
		totals[i] = engine.RowScore(r, s.GlitterBlue)
	}
	return totals
}

// AllLocked reports whether every round has been completed.
func AllLocked(s Session) bool {
	for _, r := range s.Rounds {
		if !r.Locked {
			return false
		}
	}
	return true
}

// GameTotal is the sum of all row totals, lock state notwithstanding.
func GameTotal(s Session) int {
	return engine.GameTotal(s.Rounds[:], s.GlitterBlue)
}
