package models

import "time"

// Game is what we hand to the views and keep in the store (trimmed &
// consistent DTO adapted from the raw Lichess payload).
type Game struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	UserID         string    `json:"userId"`
	OpponentID     *string   `json:"opponentId"` // nil for AI opponents
	OpponentName   string    `json:"opponentName"`
	OpponentRating int       `json:"opponentRating"`
	Color          string    `json:"color"`  // "white" or "black", the requester's side
	Status         string    `json:"status"` // terminal outcome as Lichess reports it
	Winner         string    `json:"winner"` // "white", "black", or "" for draws
	PGN            string    `json:"pgn"`

	// Enrichment, absent until the matching fetch completes.
	// Analysis is all-or-nothing for the whole game; Explanations grow
	// one move at a time, keyed by uci_move.
	Analysis     []Move            `json:"analysis,omitempty"`
	Explanations map[string]string `json:"explanations,omitempty"`
}

// Analyzed reports whether the engine analysis has arrived for this game.
func (g *Game) Analyzed() bool {
	return g.Analysis != nil
}

// Move is one analyzed ply of the requester, as returned by /api/analyze.
type Move struct {
	UCIMove          string         `json:"uci_move"`
	BestMove         string         `json:"best_move"`
	Classification   Classification `json:"classification"`
	EvaluationBefore float64        `json:"evaluation_before"`
	EvaluationAfter  float64        `json:"evaluation_after"`
	FENBefore        string         `json:"fen_before"`
	FENAfter         string         `json:"fen_after"`
	PVBefore         []PV           `json:"pv_before"`
	PVAfter          []PV           `json:"pv_after"`
}

// PV is one line of a principal variation. Field names follow the engine
// wrapper's casing on the wire.
type PV struct {
	Move      string `json:"Move"`
	Centipawn int    `json:"Centipawn"`
	Mate      *int   `json:"Mate"`
}

// Classification is the engine's verdict on a played move. Closed set.
type Classification string

const (
	Brilliant  Classification = "Brilliant"
	Excellent  Classification = "Excellent"
	Good       Classification = "Good"
	Neutral    Classification = "Neutral"
	Inaccuracy Classification = "Inaccuracy"
	Mistake    Classification = "Mistake"
	Blunder    Classification = "Blunder"
	MissedWin  Classification = "Missed Win"
)
