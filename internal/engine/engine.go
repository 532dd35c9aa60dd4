package engine

// Field identifies one of the seven dice-color inputs on a round.
type Field string

const (
	FieldYellow Field = "yellow"
	FieldPurple Field = "purple"
	FieldBlue   Field = "blue"
	FieldRedSum Field = "redSum"
	FieldGreen  Field = "green"
	FieldClear  Field = "clear"
	FieldPink   Field = "pink"
)

// Fields lists every editable dice-color field.
var Fields = []Field{
	FieldYellow,
	FieldPurple,
	FieldBlue,
	FieldRedSum,
	FieldGreen,
	FieldClear,
	FieldPink,
}

// Round is one turn's recorded dice results plus lock status. RedCount is
// the number of red dice behind RedSum, snapshotted when the round locks.
type Round struct {
	Yellow   int  `json:"yellow"`
	Purple   int  `json:"purple"`
	Blue     int  `json:"blue"`
	RedSum   int  `json:"redSum"`
	Green    int  `json:"green"`
	Clear    int  `json:"clear"`
	Pink     int  `json:"pink"`
	RedCount int  `json:"redCount"`
	Locked   bool `json:"locked"`
}

// RowScore computes the weighted score of a single round:
// yellow + purple*2 + blue*(1 or 2) + redSum*redCount + green + clear + pink.
// The blue weight doubles when the glitter-blue ruleset is on.
func RowScore(r Round, glitterBlue bool) int {
	return r.Yellow + r.Purple*2 + r.Blue*BlueWeight(glitterBlue) + r.RedSum*r.RedCount + r.Green + r.Clear + r.Pink
}

// BlueWeight is the blue-field multiplier under the given ruleset.
func BlueWeight(glitterBlue bool) int {
	if glitterBlue {
		return 2
	}
	return 1
}

// GameTotal sums RowScore over every round, locked or not. Whether the
// total is worth showing before all rounds lock is the caller's decision.
func GameTotal(rounds []Round, glitterBlue bool) int {
	total := 0
	for _, r := range rounds {
		total += RowScore(r, glitterBlue)
	}
	return total
}

// ApplyFieldEdit returns a copy of r with field set to the coerced value of
// raw. A locked round is an absolute write barrier: the input round comes
// back unchanged. Unknown field names are also a no-op.
func ApplyFieldEdit(r Round, field Field, raw string) Round {
	if r.Locked {
		return r
	}
	v := Coerce(raw)
	switch field {
	case FieldYellow:
		r.Yellow = v
	case FieldPurple:
		r.Purple = v
	case FieldBlue:
		r.Blue = v
	case FieldRedSum:
		r.RedSum = v
	case FieldGreen:
		r.Green = v
	case FieldClear:
		r.Clear = v
	case FieldPink:
		r.Pink = v
	}
	return r
}

// Lock returns a copy of r with Locked set and RedCount snapshotted.
// Locking an already-locked round is idempotent; the earlier snapshot wins.
func Lock(r Round, redCount int) Round {
	if r.Locked {
		return r
	}
	r.RedCount = redCount
	r.Locked = true
	return r
}

// ToggleSign returns the additive inverse. -0 is stored and scored as 0.
func ToggleSign(v int) int {
	return -v
}
