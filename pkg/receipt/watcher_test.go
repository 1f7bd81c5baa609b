package receipt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// fakeProvider returns NotFound until a hash has been mined
type fakeProvider struct {
	mu      sync.Mutex
	mined   map[common.Hash]*types.Receipt
	errs    map[common.Hash]error
	calls   map[common.Hash]int
	pending int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		mined: make(map[common.Hash]*types.Receipt),
		errs:  make(map[common.Hash]error),
		calls: make(map[common.Hash]int),
	}
}

func (p *fakeProvider) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[hash]++
	if err, ok := p.errs[hash]; ok {
		return nil, err
	}
	if r, ok := p.mined[hash]; ok && p.calls[hash] > p.pending {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (p *fakeProvider) mine(hash common.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mined[hash] = &types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful}
}

func (p *fakeProvider) callCount(hash common.Hash) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[hash]
}

type recorder struct {
	mu       sync.Mutex
	receipts []*types.Receipt
	done     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) handle(_ context.Context, receipt *types.Receipt) {
	r.mu.Lock()
	r.receipts = append(r.receipts, receipt)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.receipts)
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for receipt handler")
	}
}

func newTestWatcher(p Provider, h Handler) *Watcher {
	return NewWatcher(p, h, Config{Interval: 5 * time.Millisecond, RequestTimeout: time.Second}, zap.NewNop())
}

func TestWatcher_HandlesReceiptOnce(t *testing.T) {
	provider := newFakeProvider()
	provider.pending = 3
	rec := newRecorder()
	w := newTestWatcher(provider, rec.handle)
	w.Start(context.Background())
	defer w.Stop()

	hash := common.HexToHash("0xaa")
	provider.mine(hash)

	started, err := w.Watch(hash)
	if err != nil || !started {
		t.Fatalf("Watch() = %v, %v", started, err)
	}
	if again, _ := w.Watch(hash); again {
		t.Error("duplicate Watch should be ignored")
	}

	waitFor(t, rec.done)

	if w.IsWatching(hash) {
		t.Error("hash should leave the pending set after its receipt")
	}
	if again, _ := w.Watch(hash); again {
		t.Error("Watch of a handled hash should be ignored")
	}

	time.Sleep(30 * time.Millisecond)
	if n := rec.count(); n != 1 {
		t.Errorf("expected handler to run once, ran %d times", n)
	}
	if n := provider.callCount(hash); n < 4 {
		t.Errorf("expected at least 4 receipt polls, got %d", n)
	}
}

func TestWatcher_ConcurrentWatchHandlesOnce(t *testing.T) {
	provider := newFakeProvider()
	provider.pending = 2
	rec := newRecorder()
	w := newTestWatcher(provider, rec.handle)
	w.Start(context.Background())
	defer w.Stop()

	hash := common.HexToHash("0xcc")
	provider.mine(hash)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_, _ = w.Watch(hash)
				}
			}
		}()
	}

	waitFor(t, rec.done)
	time.Sleep(30 * time.Millisecond)
	close(stop)
	wg.Wait()

	if n := rec.count(); n != 1 {
		t.Errorf("expected handler to run once, ran %d times", n)
	}
	if w.IsWatching(hash) {
		t.Error("handled hash should not be watched again")
	}
}

func TestWatcher_IndependentHashes(t *testing.T) {
	provider := newFakeProvider()
	rec := newRecorder()
	w := newTestWatcher(provider, rec.handle)
	w.Start(context.Background())
	defer w.Stop()

	stuck := common.HexToHash("0x01")
	mined := common.HexToHash("0x02")
	provider.mine(mined)

	_, _ = w.Watch(stuck)
	_, _ = w.Watch(mined)

	// the older hash never confirming must not block the newer one
	waitFor(t, rec.done)
	if !w.IsWatching(stuck) {
		t.Error("unconfirmed hash should still be watched")
	}
	if pending := w.Pending(); len(pending) != 1 || pending[0] != stuck {
		t.Errorf("unexpected pending set %v", pending)
	}
}

func TestWatcher_ErrorsKeepPolling(t *testing.T) {
	provider := newFakeProvider()
	hash := common.HexToHash("0x03")
	provider.errs[hash] = errors.New("connection refused")

	var handled atomic.Int32
	w := newTestWatcher(provider, func(context.Context, *types.Receipt) { handled.Add(1) })
	w.Start(context.Background())

	_, _ = w.Watch(hash)
	time.Sleep(40 * time.Millisecond)
	w.Stop()

	if handled.Load() != 0 {
		t.Error("handler must not run on errors")
	}
	if n := provider.callCount(hash); n < 2 {
		t.Errorf("expected repeated polling after errors, got %d calls", n)
	}
}

func TestWatcher_UnwatchAndStop(t *testing.T) {
	provider := newFakeProvider()
	w := newTestWatcher(provider, func(context.Context, *types.Receipt) {
		t.Error("handler must not run for unwatched hashes")
	})

	if _, err := w.Watch(common.HexToHash("0x04")); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}

	w.Start(context.Background())
	hash := common.HexToHash("0x05")
	_, _ = w.Watch(hash)
	w.Unwatch(hash)
	w.Unwatch(hash)
	if w.IsWatching(hash) {
		t.Error("hash still watched after Unwatch")
	}

	provider.mine(hash)
	time.Sleep(20 * time.Millisecond)
	w.Stop()

	if _, err := w.Watch(hash); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted after Stop, got %v", err)
	}
}
