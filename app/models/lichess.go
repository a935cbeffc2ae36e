package models

// LichessGame represents the subset of the Lichess game export payload the
// adapter reads.
type LichessGame struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"` // unix millis
	Winner    string `json:"winner"`
	Status    string `json:"status"`
	PGN       string `json:"pgn"`
	Players   struct {
		White LichessPlayer `json:"white"`
		Black LichessPlayer `json:"black"`
	} `json:"players"`
}

// LichessPlayer is one side of a Lichess game. User is nil for engine
// opponents; AILevel is set instead.
type LichessPlayer struct {
	User *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
	Rating  int `json:"rating"`
	AILevel int `json:"aiLevel"`
}
