package app

import (
	"sync"

	"github.com/akoQassym/grandmaster-ai/view"
)

// detailRegistry keeps one detail view per game id, mirroring one mounted
// component per game route. Views live for the process, like the store.
type detailRegistry struct {
	mu     sync.Mutex
	views  map[string]*view.DetailView
	create func(gameID string) *view.DetailView
}

func newDetailRegistry(create func(gameID string) *view.DetailView) *detailRegistry {
	return &detailRegistry{
		views:  make(map[string]*view.DetailView),
		create: create,
	}
}

// get returns the view for gameID, creating it on first use.
func (r *detailRegistry) get(gameID string) *view.DetailView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[gameID]; ok {
		return v
	}
	v := r.create(gameID)
	r.views[gameID] = v
	return v
}
