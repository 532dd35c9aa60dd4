package engine

// Coerce maps raw textual input to an integer. Every input maps somewhere:
// non-digit characters are stripped, a single minus sign counts only before
// the first digit, and the digit run is capped at 3 characters, so results
// always land in [-999, 999]. A bare "-" (or any input with no digits)
// coerces to 0. Per-field edits and default red-dice count edits both go
// through this same function so edge cases behave identically everywhere.
func Coerce(raw string) int {
	neg := false
	n := 0
	digits := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '-' && digits == 0 && !neg:
			neg = true
		case c >= '0' && c <= '9':
			if digits == 3 {
				continue
			}
			n = n*10 + int(c-'0')
			digits++
		}
	}
	if neg {
		return -n
	}
	return n
}
