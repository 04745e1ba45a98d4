package memory

import (
	"context"
	"sort"
	"sync"
)

// Registry is an in-memory set of quiz ids.
type Registry struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

func (r *Registry) Add(_ context.Context, quizID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[quizID] = struct{}{}
	return nil
}

func (r *Registry) Contains(_ context.Context, quizID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ids[quizID]
	return ok, nil
}

func (r *Registry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids), nil
}

// List returns ids in lexical order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.ids))
	for id := range r.ids {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}
