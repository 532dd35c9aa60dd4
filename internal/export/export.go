// Package export formats a finished (or in-progress) sheet as delimited
// text. It is a pure formatting layer: nothing here mutates engine state.
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/jmreyes/dicesheet-backend/internal/engine"
)

var header = []string{"Round", "Yellow", "Purple", "Blue", "Red Sum", "Red Dice", "Green", "Clear", "Pink", "Total"}

// BuildCSV renders one header row, one row per round with purple and blue
// pre-multiplied per the scoring weights, and a footer row labeled "Total"
// carrying the game total.
func BuildCSV(rounds []engine.Round, glitterBlue bool, gameTotal int) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write(header)
	for i, r := range rounds {
		_ = w.Write([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Yellow),
			strconv.Itoa(r.Purple * 2),
			strconv.Itoa(r.Blue * engine.BlueWeight(glitterBlue)),
			strconv.Itoa(r.RedSum),
			strconv.Itoa(r.RedCount),
			strconv.Itoa(r.Green),
			strconv.Itoa(r.Clear),
			strconv.Itoa(r.Pink),
			strconv.Itoa(engine.RowScore(r, glitterBlue)),
		})
	}
	_ = w.Write([]string{"Total", "", "", "", "", "", "", "", "", strconv.Itoa(gameTotal)})

	w.Flush()
	return sb.String()
}
