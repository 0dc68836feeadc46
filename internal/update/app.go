package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	if opts.Service == nil {
		return fmt.Errorf("update: service is required")
	}
	all := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	program := tea.NewProgram(NewModel(ctx, opts), all...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
