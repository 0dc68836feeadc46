// Package cli wires configuration, logging and storage into the shopd
// command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/config"
	"github.com/sandeepkv93/shopd/internal/logging"
	"github.com/sandeepkv93/shopd/internal/service"
	"github.com/sandeepkv93/shopd/internal/storage"
)

// app holds the persistent flag values shared by every subcommand.
type app struct {
	configPath string
	backend    string
	file       string
	verbose    bool

	// userConfigPath replaces the per-user config file location.
	userConfigPath string
}

// session is everything a command needs once config has been resolved.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Store
	svc    *service.Service
}

func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shopd",
		Short: "Shared persistent shopping list",
		Long: `shopd keeps one shopping list that everybody pointed at the same store
edits together. Without a subcommand it opens the interactive editor.

Every action reads the stored list, applies one change and writes it back, so
a second terminal (or a second machine sharing a Redis server) sees the
result on its next read.`,
		Example: `  # Open the interactive editor on ./shopping_list.json
  shopd

  # Add two items and check one off
  shopd add milk "rye bread"
  shopd check milk

  # Print the list as markdown from a shared Redis store
  SHOPD_REDIS_URL=redis://localhost:6379/0 shopd --backend redis list --format markdown`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (yaml or json)")
	flags.StringVar(&a.backend, "backend", "", "storage backend: file, sqlite, redis or memory")
	flags.StringVar(&a.file, "file", "", "path of the JSON list file (file backend)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newAddCommand(),
		a.newCheckCommand(),
		a.newUncheckCommand(),
		a.newToggleCommand(),
		a.newClearCheckedCommand(),
		a.newResetCommand(),
		a.newListCommand(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]any{}
	if cmd.Flags().Changed("backend") {
		overrides["backend"] = a.backend
	}
	if cmd.Flags().Changed("file") {
		overrides["file"] = a.file
	}
	return config.Load(config.LoadOptions{
		ConfigPath:     a.configPath,
		UserConfigPath: a.userConfigPath,
		Overrides:      overrides,
	})
}

// withSession resolves config, logger and store, runs fn and releases
// everything afterwards. Interactive sessions log to the configured file
// instead of the terminal.
func (a *app) withSession(cmd *cobra.Command, interactive bool, fn func(ctx context.Context, s session) error) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath := ""
	if interactive {
		logPath = cfg.LogFile
		if logPath == "" {
			logPath = "off"
		}
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: logPath, Verbose: a.verbose})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()
	logger.Debug("store opened", zap.String("backend", cfg.Backend))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, session{cfg: cfg, logger: logger, store: store, svc: service.New(store, logger)})
}
