// Package receipt watches pending source transactions until their receipts appear.
package receipt

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/internal/metrics"
)

// ErrNotStarted is returned by Watch before Start or after Stop
var ErrNotStarted = errors.New("receipt watcher not running")

// Provider returns the receipt of a transaction, or ethereum.NotFound while it is pending
type Provider interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Handler is called exactly once per watched hash with its receipt
type Handler func(ctx context.Context, receipt *types.Receipt)

// Config controls polling
type Config struct {
	Interval       time.Duration
	RequestTimeout time.Duration
}

type watch struct {
	hash   common.Hash
	cancel context.CancelFunc
}

// Watcher keeps one polling goroutine per pending hash
type Watcher struct {
	provider Provider
	handler  Handler
	cfg      Config
	logger   *zap.Logger

	watches *xsync.MapOf[string, *watch]
	handled *xsync.MapOf[string, struct{}]

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher. Zero config values fall back to a 3s interval
// and a 10s per-request timeout.
func NewWatcher(provider Provider, handler Handler, cfg Config, logger *zap.Logger) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 3 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return &Watcher{
		provider: provider,
		handler:  handler,
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "receipt_watcher")),
		watches:  xsync.NewMapOf[string, *watch](),
		handled:  xsync.NewMapOf[string, struct{}](),
	}
}

func key(hash common.Hash) string {
	return strings.ToLower(hash.Hex())
}

// Start enables watching. Watches end when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctx, w.cancel = context.WithCancel(ctx)
}

// Stop cancels all watches and waits for them to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.ctx = nil
	w.mu.Unlock()

	w.wg.Wait()
}

// Watch starts polling for the receipt of hash. It reports false when the hash
// is already watched or was already handled.
func (w *Watcher) Watch(hash common.Hash) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx == nil {
		return false, ErrNotStarted
	}

	k := key(hash)
	if _, done := w.handled.Load(k); done {
		return false, nil
	}

	ctx, cancel := context.WithCancel(w.ctx)
	wt := &watch{hash: hash, cancel: cancel}
	if _, loaded := w.watches.LoadOrStore(k, wt); loaded {
		cancel()
		return false, nil
	}
	metrics.PendingHashes.Set(float64(w.watches.Size()))

	w.wg.Add(1)
	go w.run(ctx, k, wt)

	w.logger.Debug("Watching transaction", zap.String("tx_hash", hash.Hex()))
	return true, nil
}

// Unwatch stops watching hash without calling the handler
func (w *Watcher) Unwatch(hash common.Hash) {
	if wt, ok := w.watches.LoadAndDelete(key(hash)); ok {
		wt.cancel()
		metrics.PendingHashes.Set(float64(w.watches.Size()))
	}
}

// IsWatching reports whether hash is still awaiting its receipt
func (w *Watcher) IsWatching(hash common.Hash) bool {
	_, ok := w.watches.Load(key(hash))
	return ok
}

// Pending returns the hashes still awaiting receipts
func (w *Watcher) Pending() []common.Hash {
	out := make([]common.Hash, 0, w.watches.Size())
	w.watches.Range(func(_ string, wt *watch) bool {
		out = append(out, wt.hash)
		return true
	})
	return out
}

func (w *Watcher) run(ctx context.Context, k string, wt *watch) {
	defer w.wg.Done()
	defer wt.cancel()

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		if receipt := w.poll(ctx, wt.hash); receipt != nil {
			// mark handled before leaving the watch set so a concurrent
			// Watch always sees one of the two
			w.handled.Store(k, struct{}{})
			removed := false
			w.watches.Compute(k, func(old *watch, loaded bool) (*watch, bool) {
				removed = loaded && old == wt
				return old, !loaded || old == wt
			})
			if !removed {
				// Unwatch raced us
				w.handled.Delete(k)
				return
			}
			metrics.PendingHashes.Set(float64(w.watches.Size()))
			w.handler(ctx, receipt)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, hash common.Hash) *types.Receipt {
	reqCtx, cancel := context.WithTimeout(ctx, w.cfg.RequestTimeout)
	defer cancel()

	receipt, err := w.provider.TransactionReceipt(reqCtx, hash)
	switch {
	case err == nil && receipt != nil:
		return receipt
	case err == nil, errors.Is(err, ethereum.NotFound):
		return nil
	case ctx.Err() != nil:
		return nil
	default:
		metrics.ErrorsTotal.WithLabelValues("receipt_watcher", "receipt_fetch").Inc()
		w.logger.Warn("Failed to fetch receipt",
			zap.String("tx_hash", hash.Hex()),
			zap.Error(err))
		return nil
	}
}
