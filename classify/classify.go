// Package classify maps a move classification onto the presentation
// metadata the views attach to each analyzed move. Pure lookup, no state.
package classify

import "github.com/akoQassym/grandmaster-ai/app/models"

// Severity orders classifications from best to worst for display sorting.
// Lower is better.
type Severity int

const (
	SeverityBrilliant Severity = iota
	SeverityExcellent
	SeverityGood
	SeverityNeutral
	SeverityInaccuracy
	SeverityMistake
	SeverityMissedWin
	SeverityBlunder
)

// Info is the presentation metadata for one classification.
type Info struct {
	Label    string   `json:"label"`
	Color    string   `json:"color"` // hex, for the move badge
	Glyph    string   `json:"glyph"` // PGN-style annotation symbol
	Severity Severity `json:"severity"`
}

var table = map[models.Classification]Info{
	models.Brilliant:  {Label: "Brilliant", Color: "#1baca6", Glyph: "!!", Severity: SeverityBrilliant},
	models.Excellent:  {Label: "Excellent", Color: "#5c8bb0", Glyph: "!", Severity: SeverityExcellent},
	models.Good:       {Label: "Good", Color: "#95b776", Glyph: "", Severity: SeverityGood},
	models.Neutral:    {Label: "Neutral", Color: "#8a8a8a", Glyph: "", Severity: SeverityNeutral},
	models.Inaccuracy: {Label: "Inaccuracy", Color: "#f0c15c", Glyph: "?!", Severity: SeverityInaccuracy},
	models.Mistake:    {Label: "Mistake", Color: "#e58f2a", Glyph: "?", Severity: SeverityMistake},
	models.MissedWin:  {Label: "Missed Win", Color: "#dbac16", Glyph: "??", Severity: SeverityMissedWin},
	models.Blunder:    {Label: "Blunder", Color: "#ca3431", Glyph: "??", Severity: SeverityBlunder},
}

// Lookup returns the presentation metadata for c. Unknown classifications
// (a newer backend could add one) fall back to the Neutral entry rather
// than breaking the move list.
func Lookup(c models.Classification) Info {
	if info, ok := table[c]; ok {
		return info
	}
	return table[models.Neutral]
}
