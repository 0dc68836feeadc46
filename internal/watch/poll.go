package watch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/model"
)

const DefaultPollInterval = 2 * time.Second

// Loader is the read half of a store.
type Loader interface {
	Load(ctx context.Context) (model.ShoppingList, error)
}

// Poller re-reads a store on a fixed interval and signals when the stored
// list differs from the previous read. It covers backends without file
// events (sqlite, redis).
type Poller struct {
	mu       sync.Mutex
	src      Loader
	interval time.Duration
	logger   *zap.Logger
	out      chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool

	last     model.ShoppingList
	haveLast bool
}

func NewPoller(src Loader, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		src:      src,
		interval: interval,
		logger:   logger,
		out:      make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C delivers one value per detected change. Changes seen while a value is
// still pending are coalesced.
func (p *Poller) C() <-chan struct{} {
	return p.out
}

// Start takes the initial snapshot synchronously and then polls in the
// background.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	p.snapshot(ctx)
	go p.loop(ctx)
}

// Stop is safe to call more than once and before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	wasStarted := p.started
	close(p.stopCh)
	p.mu.Unlock()
	if wasStarted {
		<-p.doneCh
	}
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			if !p.changed(ctx) {
				continue
			}
			select {
			case p.out <- struct{}{}:
			default:
			}
		}
	}
}

func (p *Poller) snapshot(ctx context.Context) {
	list, err := p.src.Load(ctx)
	if err != nil {
		p.logger.Debug("poll snapshot failed", zap.Error(err))
		return
	}
	p.last = list
	p.haveLast = true
}

// changed loads the list and compares it with the previous successful read.
// Failed reads never count as a change.
func (p *Poller) changed(ctx context.Context) bool {
	list, err := p.src.Load(ctx)
	if err != nil {
		p.logger.Debug("poll failed", zap.Error(err))
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.haveLast && p.last.Equal(list) {
		return false
	}
	p.last = list
	p.haveLast = true
	return true
}
