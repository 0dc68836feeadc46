package storage

import (
	"context"
	"sync"

	"github.com/sandeepkv93/shopd/internal/model"
)

// MemoryStore is an in-process Store. LoadErr and SaveErr let callers
// simulate backend failures.
type MemoryStore struct {
	mu      sync.Mutex
	list    model.ShoppingList
	saves   int
	LoadErr error
	SaveErr error
}

func NewMemoryStore(initial model.ShoppingList) *MemoryStore {
	return &MemoryStore{list: initial.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (model.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return model.NewShoppingList(), s.LoadErr
	}
	if err := ctx.Err(); err != nil {
		return model.NewShoppingList(), err
	}
	return s.list.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, list model.ShoppingList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.list = list.Clone()
	s.saves++
	return nil
}

// Saves reports how many successful writes the store has seen.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
