package service

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/shopd/internal/commands"
)

// Handlers binds parsed commands to this service. Every handler runs one
// full load, apply, save cycle.
func (s *Service) Handlers(ctx context.Context) commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.ItemArgs) (commands.Result, error) {
			return toCommandResult(s.Add(ctx, a.Name))
		},
		Check: func(a commands.ItemArgs) (commands.Result, error) {
			return toCommandResult(s.Toggle(ctx, a.Name, true))
		},
		Uncheck: func(a commands.ItemArgs) (commands.Result, error) {
			return toCommandResult(s.Toggle(ctx, a.Name, false))
		},
		Toggle: func(a commands.ItemArgs) (commands.Result, error) {
			return toCommandResult(s.Flip(ctx, a.Name))
		},
		Clear: func() (commands.Result, error) {
			return toCommandResult(s.RemoveChecked(ctx))
		},
		Reset: func() (commands.Result, error) {
			return toCommandResult(s.Reset(ctx))
		},
		List: func() (commands.Result, error) {
			list := s.Load(ctx)
			return commands.Result{Message: fmt.Sprintf("%d items, %d checked", list.Len(), list.CheckedCount())}, nil
		},
	}
}

func toCommandResult(res Result, err error) (commands.Result, error) {
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: res.Outcome.Message, Changed: res.Outcome.Changed}, nil
}
