// Package watch notices when the shared list file is rewritten by another
// process so an open editor can reload it.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 150 * time.Millisecond

// FileWatcher watches the directory holding one file; the directory is
// watched because atomic saves replace the file inode.
type FileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	debounce time.Duration
	logger   *zap.Logger
	out      chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
}

func New(path string, debounce time.Duration, logger *zap.Logger) (*FileWatcher, error) {
	if path == "" {
		return nil, errors.New("watch: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher:  w,
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: debounce,
		logger:   logger,
		out:      make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// C delivers one value per debounced burst of changes to the file.
func (fw *FileWatcher) C() <-chan struct{} {
	return fw.out
}

func (fw *FileWatcher) Path() string {
	return fw.path
}

// Start begins watching; it does not block.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running || fw.stopped {
		return nil
	}
	if err := os.MkdirAll(fw.dir, 0o755); err != nil {
		return err
	}
	if err := fw.watcher.Add(fw.dir); err != nil {
		return err
	}
	fw.running = true
	fw.logger.Debug("watching list file", zap.String("path", fw.path))
	go fw.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the fsnotify handle. Safe to call
// more than once and before Start.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return
	}
	fw.stopped = true
	wasRunning := fw.running
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	if wasRunning {
		<-fw.doneCh
	}
	if err := fw.watcher.Close(); err != nil {
		fw.logger.Warn("closing watcher", zap.Error(err))
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))
		case <-fire:
			fire = nil
			select {
			case fw.out <- struct{}{}:
			default:
			}
		}
	}
}

func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != fw.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}
