package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/shopd/internal/service"
)

var warningPrefix = color.New(color.FgYellow, color.Bold).SprintFunc()

type itemAction func(ctx context.Context, svc *service.Service, name string) (service.Result, error)

func (a *app) newAddCommand() *cobra.Command {
	return a.newItemCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Add items to the list",
		Long: `Add one unchecked item per argument. Names are trimmed; a name that is
already on the list (ignoring case) is skipped with a warning.`,
		Example: `  shopd add milk eggs
  shopd add "rye bread"`,
	}, func(ctx context.Context, svc *service.Service, name string) (service.Result, error) {
		return svc.Add(ctx, name)
	})
}

func (a *app) newCheckCommand() *cobra.Command {
	return a.newItemCommand(&cobra.Command{
		Use:     "check NAME...",
		Aliases: []string{"done"},
		Short:   "Mark items as bought",
	}, func(ctx context.Context, svc *service.Service, name string) (service.Result, error) {
		return svc.Toggle(ctx, name, true)
	})
}

func (a *app) newUncheckCommand() *cobra.Command {
	return a.newItemCommand(&cobra.Command{
		Use:   "uncheck NAME...",
		Short: "Mark items as still needed",
	}, func(ctx context.Context, svc *service.Service, name string) (service.Result, error) {
		return svc.Toggle(ctx, name, false)
	})
}

func (a *app) newToggleCommand() *cobra.Command {
	return a.newItemCommand(&cobra.Command{
		Use:   "toggle NAME...",
		Short: "Flip the checkbox of items",
	}, func(ctx context.Context, svc *service.Service, name string) (service.Result, error) {
		return svc.Flip(ctx, name)
	})
}

// newItemCommand runs action once per argument, in order. Warnings are
// reported and skipped; a storage failure stops the run.
func (a *app) newItemCommand(cmd *cobra.Command, action itemAction) *cobra.Command {
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.withSession(cmd, false, func(ctx context.Context, s session) error {
			for _, name := range args {
				res, err := action(ctx, s.svc, name)
				if err := report(cmd, res, err); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return cmd
}

func (a *app) newClearCheckedCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear-checked",
		Aliases: []string{"remove-checked", "clear"},
		Short:   "Remove every checked item",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, false, func(ctx context.Context, s session) error {
				res, err := s.svc.RemoveChecked(ctx)
				return report(cmd, res, err)
			})
		},
	}
}

func (a *app) newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Empty the whole list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, false, func(ctx context.Context, s session) error {
				res, err := s.svc.Reset(ctx)
				return report(cmd, res, err)
			})
		},
	}
}

// report prints the outcome of one action. Validation warnings go to stderr
// and do not fail the command.
func report(cmd *cobra.Command, res service.Result, err error) error {
	switch {
	case service.IsWarning(err):
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warningPrefix("warning:"), err)
		return nil
	case err != nil:
		return err
	}
	if res.Outcome.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Outcome.Message)
	}
	return nil
}
