package view

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/akoQassym/grandmaster-ai/app/models"
	"github.com/akoQassym/grandmaster-ai/remote"
	"github.com/akoQassym/grandmaster-ai/store"
)

// AnalysisFetcher is the slice of the remote client the loader needs.
type AnalysisFetcher interface {
	FetchAnalysis(ctx context.Context, pgn, playerID string) ([]models.Move, error)
}

// AnalysisLoader ensures a game's analysis is present in the store,
// fetching it at most once per game id no matter how many views ask
// concurrently. Shared by all detail views.
type AnalysisLoader struct {
	store  *store.GameStore
	client AnalysisFetcher
	group  singleflight.Group
}

// NewAnalysisLoader builds a loader over the shared store and client.
func NewAnalysisLoader(st *store.GameStore, client AnalysisFetcher) *AnalysisLoader {
	return &AnalysisLoader{store: st, client: client}
}

// Ensure returns the game with analysis present, fetching and merging it
// first if absent. Concurrent calls for the same id collapse into a single
// upstream request; the in-flight marker is set before any suspension
// point. A failed fetch leaves the store untouched.
func (l *AnalysisLoader) Ensure(ctx context.Context, id string) (models.Game, error) {
	g, ok := l.store.GetByID(id)
	if !ok {
		return models.Game{}, ErrNotFound
	}
	if g.Analyzed() {
		return g, nil
	}

	_, err, _ := l.group.Do(id, func() (any, error) {
		// Re-check under the flight: a racing caller may have merged
		// the analysis between our read and this point.
		cur, ok := l.store.GetByID(id)
		if !ok {
			return nil, ErrNotFound
		}
		if cur.Analyzed() {
			return nil, nil
		}

		moves, err := l.client.FetchAnalysis(ctx, cur.PGN, cur.UserID)
		if err != nil {
			return nil, err
		}
		if err := checkComplete(cur, moves); err != nil {
			return nil, err
		}
		l.store.MergeGame(id, store.Patch{Analysis: moves})
		return nil, nil
	})
	if err != nil {
		return models.Game{}, err
	}

	g, ok = l.store.GetByID(id)
	if !ok {
		// Evicted by a list refresh while the analysis was in flight.
		return models.Game{}, ErrNotFound
	}
	return g, nil
}

// checkComplete rejects a partial analysis: the contract is all-or-nothing
// for the whole game, so the move count must match the requester's plies.
func checkComplete(g models.Game, moves []models.Move) error {
	want, ok := requesterPlyCount(g.PGN, g.Color)
	if !ok || len(moves) == 0 {
		if len(moves) == 0 {
			return &remote.MalformedResponseError{Reason: fmt.Sprintf("game %s: empty analysis", g.ID)}
		}
		return nil
	}
	if len(moves) != want {
		return &remote.MalformedResponseError{
			Reason: fmt.Sprintf("game %s: analysis has %d moves, expected %d", g.ID, len(moves), want),
		}
	}
	return nil
}
