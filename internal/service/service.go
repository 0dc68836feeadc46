// Package service runs shopping-list actions as load, apply, save cycles.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/model"
	"github.com/sandeepkv93/shopd/internal/storage"
)

// Result is returned for every action, including rejected ones.
type Result struct {
	Outcome model.Outcome
	List    model.ShoppingList
}

type Service struct {
	store  storage.Store
	logger *zap.Logger
}

func New(store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Load never fails: any read problem degrades to an empty list.
func (s *Service) Load(ctx context.Context) model.ShoppingList {
	list, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("list unreadable, starting empty", zap.Error(err))
		return model.NewShoppingList()
	}
	if list.Items == nil {
		list.Items = []model.Item{}
	}
	return list
}

// List returns the items in display order. It never writes.
func (s *Service) List(ctx context.Context) []model.Item {
	return s.Load(ctx).SortForDisplay()
}

func (s *Service) Add(ctx context.Context, name string) (Result, error) {
	return s.Do(ctx, model.Add(name))
}

func (s *Service) Toggle(ctx context.Context, name string, checked bool) (Result, error) {
	return s.Do(ctx, model.Toggle(name, checked))
}

func (s *Service) Flip(ctx context.Context, name string) (Result, error) {
	return s.Do(ctx, model.Flip(name))
}

func (s *Service) RemoveChecked(ctx context.Context) (Result, error) {
	return s.Do(ctx, model.RemoveChecked())
}

func (s *Service) Reset(ctx context.Context) (Result, error) {
	return s.Do(ctx, model.Reset())
}

// Do applies one action as an atomic read-modify-write. The store is written
// only when the action changed the list. Validation failures come back as
// warnings (see IsWarning) with the unchanged list.
func (s *Service) Do(ctx context.Context, action model.Action) (Result, error) {
	current := s.Load(ctx)
	next, outcome, err := model.Apply(current, action)
	if err != nil {
		s.logger.Debug("action rejected", zap.String("action", string(action.Kind)), zap.String("name", action.Name), zap.Error(err))
		if isValidation(err) {
			return Result{List: current}, &Warning{Text: WarningText(err, strings.TrimSpace(action.Name)), Err: err}
		}
		return Result{List: current}, err
	}
	if !outcome.Changed {
		s.logger.Debug("action left list unchanged", zap.String("action", string(action.Kind)), zap.String("message", outcome.Message))
		return Result{Outcome: outcome, List: current}, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error("save failed", zap.String("action", string(action.Kind)), zap.Error(err))
		return Result{List: current}, fmt.Errorf("save list: %w", err)
	}
	s.logger.Info("list updated",
		zap.String("action", string(action.Kind)),
		zap.String("name", action.Name),
		zap.Int("items", next.Len()),
	)
	return Result{Outcome: outcome, List: next}, nil
}

// Warning is a rejected action. The list was not changed and nothing was
// written; Text is meant for the user.
type Warning struct {
	Text string
	Err  error
}

func (w *Warning) Error() string { return w.Text }

func (w *Warning) Unwrap() error { return w.Err }

// IsWarning reports whether err is a user-facing validation problem rather
// than a storage failure.
func IsWarning(err error) bool {
	var w *Warning
	return errors.As(err, &w)
}

func isValidation(err error) bool {
	return errors.Is(err, model.ErrEmptyName) ||
		errors.Is(err, model.ErrDuplicateName) ||
		errors.Is(err, model.ErrItemNotFound)
}

// WarningText renders a validation error for people.
func WarningText(err error, name string) string {
	switch {
	case errors.Is(err, model.ErrEmptyName):
		return "Please enter an item name."
	case errors.Is(err, model.ErrDuplicateName):
		return fmt.Sprintf("'%s' is already in the list.", name)
	case errors.Is(err, model.ErrItemNotFound):
		return fmt.Sprintf("'%s' is not in the list.", name)
	case err != nil:
		return err.Error()
	default:
		return ""
	}
}
