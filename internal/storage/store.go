package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/shopd/internal/model"
)

var (
	ErrCorrupt        = errors.New("storage: stored list is corrupt")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Store persists a whole shopping list document. Load reports an absent or
// empty store as an empty list with a nil error; Save overwrites everything.
type Store interface {
	Load(ctx context.Context) (model.ShoppingList, error)
	Save(ctx context.Context, list model.ShoppingList) error
	Close() error
}
