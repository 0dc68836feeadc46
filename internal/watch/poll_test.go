package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/shopd/internal/model"
)

type fakeLoader struct {
	mu   sync.Mutex
	list model.ShoppingList
	err  error
}

func (f *fakeLoader) Load(context.Context) (model.ShoppingList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list.Clone(), f.err
}

func (f *fakeLoader) set(list model.ShoppingList, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = list
	f.err = err
}

func waitPoll(p *Poller, timeout time.Duration) bool {
	select {
	case <-p.C():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestPollerSignalsOnlyOnChange(t *testing.T) {
	src := &fakeLoader{list: model.ShoppingList{Items: []model.Item{{Name: "Milk"}}}}
	p := NewPoller(src, 10*time.Millisecond, nil)
	p.Start(context.Background())
	defer p.Stop()

	if waitPoll(p, 80*time.Millisecond) {
		t.Fatal("unchanged store should not signal")
	}

	src.set(model.ShoppingList{Items: []model.Item{{Name: "Milk", Checked: true}}}, nil)
	if !waitPoll(p, time.Second) {
		t.Fatal("expected a signal after the stored list changed")
	}
	if waitPoll(p, 80*time.Millisecond) {
		t.Fatal("one change should produce one signal")
	}
}

func TestPollerIgnoresFailedReads(t *testing.T) {
	src := &fakeLoader{list: model.NewShoppingList()}
	p := NewPoller(src, 10*time.Millisecond, nil)
	p.Start(context.Background())
	defer p.Stop()

	src.set(model.NewShoppingList(), errors.New("connection refused"))
	if waitPoll(p, 80*time.Millisecond) {
		t.Fatal("failed reads should not signal")
	}

	src.set(model.NewShoppingList(), nil)
	if waitPoll(p, 80*time.Millisecond) {
		t.Fatal("recovering to the same list should not signal")
	}
}

func TestPollerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(&fakeLoader{}, 5*time.Millisecond, nil)
	p.Start(ctx)
	cancel()
	p.Stop()
	p.Stop()
}

func TestPollerStopBeforeStart(t *testing.T) {
	p := NewPoller(&fakeLoader{}, 0, nil)
	p.Stop()
	p.Start(context.Background())
	if waitPoll(p, 20*time.Millisecond) {
		t.Fatal("stopped poller must not signal")
	}
}
