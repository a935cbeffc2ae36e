// Package view holds the two orchestrators that sit between the HTTP
// surface and the store: the list view (bulk fetch + date grouping) and the
// detail view (analysis ensure, move selection, lazy explanations).
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/akoQassym/grandmaster-ai/app/models"
	"github.com/akoQassym/grandmaster-ai/store"
)

// State is the detail view's position in its lifecycle.
type State string

const (
	// StateNoGame is terminal: the id was never in the store.
	StateNoGame State = "NO_GAME"
	// StateAwaitingAnalysis means the game exists but its analysis fetch
	// has not completed yet.
	StateAwaitingAnalysis State = "AWAITING_ANALYSIS"
	// StateReady means analysis is present and a move is selected.
	StateReady State = "READY"
	// StateExplaining means an explanation fetch for the selected move is
	// in flight.
	StateExplaining State = "EXPLAINING"
)

// ExplanationFetcher is the slice of the remote client the detail view
// needs.
type ExplanationFetcher interface {
	FetchExplanation(ctx context.Context, move models.Move) (string, error)
}

// DetailView orchestrates one displayed game. Selection is tracked by
// index + uci key, never by struct identity. Safe for concurrent use.
type DetailView struct {
	mu     sync.Mutex
	store  *store.GameStore
	loader *AnalysisLoader
	client ExplanationFetcher

	gameID   string
	state    State
	selected int
	selUCI   string
}

// NewDetailView builds a detail view for one game id over the shared
// store, loader, and client.
func NewDetailView(st *store.GameStore, loader *AnalysisLoader, client ExplanationFetcher, gameID string) *DetailView {
	return &DetailView{
		store:    st,
		loader:   loader,
		client:   client,
		gameID:   gameID,
		state:    StateAwaitingAnalysis,
		selected: -1,
	}
}

// GameID returns the id this view displays.
func (v *DetailView) GameID() string { return v.gameID }

// State returns the current lifecycle state.
func (v *DetailView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Mount resolves the view's game: NO_GAME when the id is unknown,
// otherwise it ensures analysis is present (fetching at most once across
// all views) and auto-selects the first move. Re-mounting with analysis
// already cached issues no network call. A fetch failure is returned to
// the caller and leaves the view re-mountable.
func (v *DetailView) Mount(ctx context.Context) (models.Game, error) {
	v.mu.Lock()
	if _, ok := v.store.GetByID(v.gameID); !ok {
		v.state = StateNoGame
		v.mu.Unlock()
		return models.Game{}, nil
	}
	if v.state != StateExplaining {
		v.state = StateAwaitingAnalysis
	}
	v.mu.Unlock()

	g, err := v.loader.Ensure(ctx, v.gameID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			v.state = StateNoGame
			return models.Game{}, nil
		}
		v.state = StateAwaitingAnalysis
		return models.Game{}, err
	}

	if v.selected < 0 && len(g.Analysis) > 0 {
		v.selected = 0
		v.selUCI = g.Analysis[0].UCIMove
	}
	if v.state != StateExplaining {
		v.state = StateReady
	}
	return g, nil
}

// SelectMove makes the move at index the selected one. Local only — never
// triggers a network call.
func (v *DetailView) SelectMove(index int) error {
	g, ok := v.store.GetByID(v.gameID)
	if !ok {
		return ErrNotFound
	}
	if !g.Analyzed() {
		return ErrNoAnalysis
	}
	if index < 0 || index >= len(g.Analysis) {
		return ErrBadIndex
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = index
	v.selUCI = g.Analysis[index].UCIMove
	return nil
}

// Selected returns the selected move's index and uci key; index is -1
// before the first selection.
func (v *DetailView) Selected() (int, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.selUCI
}

// Explain returns the explanation for the selected move. A cached
// explanation is a pure local read. Otherwise the view enters EXPLAINING,
// fetches, merges the result, and returns to READY. A second Explain while
// one is in flight is refused with ErrBusy; a failed fetch leaves the
// store unchanged.
func (v *DetailView) Explain(ctx context.Context) (string, error) {
	v.mu.Lock()
	if v.state == StateExplaining {
		v.mu.Unlock()
		return "", ErrBusy
	}
	if v.state != StateReady || v.selected < 0 {
		v.mu.Unlock()
		return "", ErrNoAnalysis
	}
	index, uci := v.selected, v.selUCI
	v.mu.Unlock()

	g, ok := v.store.GetByID(v.gameID)
	if !ok {
		return "", ErrNotFound
	}
	if index >= len(g.Analysis) || g.Analysis[index].UCIMove != uci {
		// Analysis was atomically replaced since selection; re-select.
		return "", ErrBadIndex
	}
	if text, ok := g.Explanations[uci]; ok {
		return text, nil
	}

	v.mu.Lock()
	if v.state == StateExplaining {
		v.mu.Unlock()
		return "", ErrBusy
	}
	v.state = StateExplaining
	v.mu.Unlock()

	text, err := v.client.FetchExplanation(ctx, g.Analysis[index])

	v.mu.Lock()
	v.state = StateReady
	v.mu.Unlock()

	if err != nil {
		return "", err
	}
	v.store.MergeGame(v.gameID, store.Patch{Explanations: map[string]string{uci: text}})
	return text, nil
}
