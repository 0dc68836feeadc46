package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/update"
	"github.com/sandeepkv93/shopd/internal/watch"
)

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	return a.withSession(cmd, true, func(ctx context.Context, s session) error {
		opts := update.Options{Service: s.svc, Logger: s.logger}
		switch {
		case s.cfg.WatchesFile():
			if w := startWatcher(ctx, s); w != nil {
				defer w.Stop()
				opts.Changes = w.C()
			}
		case s.cfg.PollsStore():
			p := watch.NewPoller(s.store, s.cfg.PollInterval, s.logger)
			p.Start(ctx)
			defer p.Stop()
			opts.Changes = p.C()
		}
		return update.Run(ctx, opts)
	})
}

// startWatcher returns nil when the list file cannot be watched; the editor
// still works, it just does not pick up changes from other processes.
func startWatcher(ctx context.Context, s session) *watch.FileWatcher {
	w, err := watch.New(s.cfg.File, s.cfg.WatchDebounce, s.logger)
	if err != nil {
		s.logger.Warn("file watcher disabled", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		s.logger.Warn("file watcher disabled", zap.Error(err))
		return nil
	}
	return w
}
