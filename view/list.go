package view

import (
	"context"
	"sync"

	"github.com/akoQassym/grandmaster-ai/app/models"
	"github.com/akoQassym/grandmaster-ai/store"
)

// GamesFetcher is the slice of the remote client the list view needs.
type GamesFetcher interface {
	FetchGamesForPlayer(ctx context.Context, playerID string) ([]models.Game, error)
}

// Group is one calendar day of games, in original relative order.
type Group struct {
	Date  string        `json:"date"` // YYYY-MM-DD, UTC
	Games []models.Game `json:"games"`
}

// ListView runs the single-shot list flow: submit a player id, fetch, and
// replace the store's collection. Grouping reads whatever the store holds
// now; it never fetches analysis.
type ListView struct {
	mu     sync.Mutex
	store  *store.GameStore
	client GamesFetcher

	loading bool
	seq     uint64 // last accepted submission; stale completions do not write
}

// NewListView builds a list view over the shared store and client.
func NewListView(st *store.GameStore, client GamesFetcher) *ListView {
	return &ListView{store: st, client: client}
}

// Loading reports whether a submission is in flight.
func (v *ListView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Submit fetches the player's games and replaces the store's collection.
// A second submission while one is in flight is refused with ErrBusy, so
// two fetches can never be visibly interleaved. A fetch failure leaves the
// store's existing games untouched.
func (v *ListView) Submit(ctx context.Context, playerID string) error {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return ErrBusy
	}
	v.loading = true
	v.seq++
	mine := v.seq
	v.mu.Unlock()

	games, err := v.client.FetchGamesForPlayer(ctx, playerID)

	v.mu.Lock()
	v.loading = false
	stale := mine != v.seq
	v.mu.Unlock()

	if err != nil {
		return err
	}
	if stale {
		// A later submission was accepted; its result wins.
		return nil
	}
	v.store.ReplaceAll(games)
	return nil
}

// Groups buckets the store's current collection by calendar day, using
// each game's own recorded date. Group keys appear in first-occurrence
// order — the natural arrival order of the source data — and members keep
// their original relative order.
func (v *ListView) Groups() []Group {
	games := v.store.GetAll()

	var groups []Group
	index := make(map[string]int, len(games))
	for _, g := range games {
		day := g.Date.UTC().Format("2006-01-02")
		if i, ok := index[day]; ok {
			groups[i].Games = append(groups[i].Games, g)
			continue
		}
		index[day] = len(groups)
		groups = append(groups, Group{Date: day, Games: []models.Game{g}})
	}
	return groups
}

// Outcome classifies a game from the requester's point of view.
func Outcome(g models.Game) string {
	switch g.Winner {
	case "":
		return "draw"
	case g.Color:
		return "win"
	default:
		return "loss"
	}
}
