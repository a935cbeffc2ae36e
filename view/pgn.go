package view

import (
	"github.com/notnil/chess"
)

// requesterPlyCount parses a PGN and counts the plies played by the given
// side. The backend analyzes only the requester's moves, so a complete
// analysis must have exactly this many entries. Returns ok=false when the
// PGN does not parse — the payload is treated as opaque in that case and
// the completeness gate is skipped.
func requesterPlyCount(pgn, color string) (int, bool) {
	g := chess.NewGame()
	if err := g.UnmarshalText([]byte(pgn)); err != nil {
		return 0, false
	}

	total := len(g.Moves())
	// White moves occupy even plies (0-based), black the odd ones.
	whitePlies := (total + 1) / 2
	if color == "white" {
		return whitePlies, true
	}
	return total - whitePlies, true
}
