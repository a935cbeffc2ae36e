// Package store holds the process-wide cache of games shared by every view.
// Games arrive bare from a list fetch and are progressively enriched as
// analysis and explanation results land, in whatever order they land.
package store

import (
	"sync"

	"github.com/akoQassym/grandmaster-ai/app/models"
)

// Patch is a partial enrichment applied to one game. Analysis, when set,
// replaces the game's analysis atomically. Explanations are merged key by
// key and never remove an existing key.
type Patch struct {
	Analysis     []models.Move
	Explanations map[string]string
}

// GameStore is the single source of truth for Game records. Reads return
// deep-copied snapshots, so no caller can mutate cached state through a
// read. Constructed once at startup and passed by reference.
type GameStore struct {
	mu    sync.RWMutex
	order []string
	games map[string]*models.Game

	// Enrichment for ids that dropped out of the latest list fetch.
	// Re-attached if the id ever reappears.
	shelved map[string]Patch

	subs []func()
}

// NewGameStore returns an empty store.
func NewGameStore() *GameStore {
	return &GameStore{
		games:   make(map[string]*models.Game),
		shelved: make(map[string]Patch),
	}
}

// Subscribe registers fn to run after every completed write. Subscribers
// are invoked outside the write lock, after the write is visible.
func (s *GameStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// ReplaceAll swaps in the result of a list fetch. Incoming records are bare;
// for any id already cached, the existing analysis and explanations are
// carried over so a list re-fetch never forces a redundant analysis fetch
// or loses computed explanations. Collection order follows the incoming
// slice exactly — the list view's grouping depends on it.
func (s *GameStore) ReplaceAll(games []models.Game) {
	s.mu.Lock()

	next := make(map[string]*models.Game, len(games))
	order := make([]string, 0, len(games))
	seen := make(map[string]bool, len(games))

	for _, g := range games {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true

		record := cloneGame(&g)
		if prev, ok := s.games[g.ID]; ok {
			record.Analysis = prev.Analysis
			record.Explanations = prev.Explanations
		} else if p, ok := s.shelved[g.ID]; ok {
			record.Analysis = p.Analysis
			record.Explanations = p.Explanations
			delete(s.shelved, g.ID)
		}
		next[g.ID] = record
		order = append(order, g.ID)
	}

	// Shelve enrichment of games that vanished from the fresh list.
	for id, prev := range s.games {
		if !seen[id] && (prev.Analysis != nil || len(prev.Explanations) > 0) {
			s.shelved[id] = Patch{Analysis: prev.Analysis, Explanations: prev.Explanations}
		}
	}

	s.games = next
	s.order = order
	subs := s.subs
	s.mu.Unlock()

	notify(subs)
}

// MergeGame applies enrichment to one cached game. A no-op when the id is
// not cached — callers are expected to confirm existence first, and a late
// result for an evicted game is simply dropped. Explanation keys that do
// not match an analyzed move are discarded: explanations stay a subset of
// the analysis, and no explanation can exist before the analysis does.
func (s *GameStore) MergeGame(id string, patch Patch) {
	s.mu.Lock()

	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	if patch.Analysis != nil {
		g.Analysis = cloneMoves(patch.Analysis)
	}
	if len(patch.Explanations) > 0 && g.Analysis != nil {
		if g.Explanations == nil {
			g.Explanations = make(map[string]string, len(patch.Explanations))
		}
		for uci, text := range patch.Explanations {
			if moveIndex(g.Analysis, uci) >= 0 {
				g.Explanations[uci] = text
			}
		}
	}
	subs := s.subs
	s.mu.Unlock()

	notify(subs)
}

// GetByID returns a snapshot of one game.
func (s *GameStore) GetByID(id string) (models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return models.Game{}, false
	}
	return *cloneGame(g), true
}

// GetAll returns a snapshot of the whole collection in list order.
func (s *GameStore) GetAll() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Game, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *cloneGame(s.games[id]))
	}
	return out
}

// Len returns the number of cached games.
func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

func moveIndex(moves []models.Move, uci string) int {
	for i := range moves {
		if moves[i].UCIMove == uci {
			return i
		}
	}
	return -1
}

func cloneGame(g *models.Game) *models.Game {
	out := *g
	out.Analysis = cloneMoves(g.Analysis)
	if g.Explanations != nil {
		out.Explanations = make(map[string]string, len(g.Explanations))
		for k, v := range g.Explanations {
			out.Explanations[k] = v
		}
	}
	if g.OpponentID != nil {
		id := *g.OpponentID
		out.OpponentID = &id
	}
	return &out
}

func cloneMoves(moves []models.Move) []models.Move {
	if moves == nil {
		return nil
	}
	out := make([]models.Move, len(moves))
	copy(out, moves)
	for i := range out {
		out[i].PVBefore = clonePVs(moves[i].PVBefore)
		out[i].PVAfter = clonePVs(moves[i].PVAfter)
	}
	return out
}

func clonePVs(pvs []models.PV) []models.PV {
	if pvs == nil {
		return nil
	}
	out := make([]models.PV, len(pvs))
	copy(out, pvs)
	for i := range out {
		if pvs[i].Mate != nil {
			m := *pvs[i].Mate
			out[i].Mate = &m
		}
	}
	return out
}
