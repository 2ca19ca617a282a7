package repository

import (
	"context"
	"sync"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
)

// InMemoryFormStore holds open entry forms for the lifetime of the process.
// Forms are working copies, not records: the real data lives upstream once
// submitted, so nothing here survives a restart on purpose.
type InMemoryFormStore struct {
	store map[string]domain.FormState

	mu sync.RWMutex
}

func NewInMemoryFormStore() *InMemoryFormStore {
	return &InMemoryFormStore{
		store: make(map[string]domain.FormState),
	}
}

func (r *InMemoryFormStore) Save(ctx context.Context, form domain.FormState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[form.ID] = form
	return nil
}

func (r *InMemoryFormStore) GetByID(ctx context.Context, id string) (domain.FormState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.store[id]
	if !ok {
		return domain.FormState{}, domain.ErrFormNotFound
	}
	return form, nil
}

func (r *InMemoryFormStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrFormNotFound
	}

	delete(r.store, id)
	return nil
}
