// Package tracker drives bridge transactions from submission to their final
// status: it watches source receipts, derives cross-chain command ids and
// hands them to the relayer poller.
package tracker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/internal/metrics"
	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/poller"
	"github.com/DINetworks/DI-U2U/pkg/receipt"
	"github.com/DINetworks/DI-U2U/pkg/relayer"
)

const (
	// MessageSourceReverted is recorded when the source receipt has a failed status
	MessageSourceReverted = "source transaction reverted"
	// MessagePollingExhausted is recorded when the relayer poll policy gives up
	MessagePollingExhausted = "relayer polling exhausted"
)

// TransactionStore defines the store operations the engine needs
type TransactionStore interface {
	Load(ctx context.Context) error
	Get(id string) (bridge.Transaction, error)
	Pending() []bridge.Transaction
	FindByTxHash(hash string) (bridge.Transaction, bool)
	Update(ctx context.Context, id string, patch bridge.Patch) (bridge.Transaction, bool, error)
}

// Config groups the watcher and poller settings
type Config struct {
	Watcher receipt.Config
	Poller  poller.Config
}

// Engine orchestrates receipt watching and relayer polling
type Engine struct {
	store   TransactionStore
	chains  *bridge.Chains
	watcher *receipt.Watcher
	poller  *poller.Poller
	logger  *zap.Logger

	ready atomic.Bool
}

// NewEngine creates a new tracker engine
func NewEngine(
	store TransactionStore,
	provider receipt.Provider,
	relayerClient relayer.Client,
	chains *bridge.Chains,
	cfg Config,
	logger *zap.Logger,
) *Engine {
	e := &Engine{
		store:  store,
		chains: chains,
		logger: logger.With(zap.String("component", "tracker")),
	}
	e.watcher = receipt.NewWatcher(provider, e.handleReceipt, cfg.Watcher, logger)
	e.poller = poller.New(relayerClient, chains, e, cfg.Poller, logger)
	return e
}

// Poller exposes the cross-chain poller
func (e *Engine) Poller() *poller.Poller {
	return e.poller
}

// Watcher exposes the receipt watcher
func (e *Engine) Watcher() *receipt.Watcher {
	return e.watcher
}

// Start loads persisted transactions, resumes tracking of the ones still
// pending and starts the background loops.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Starting tracker engine")

	if err := e.store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	e.watcher.Start(ctx)
	e.poller.Start(ctx)

	if err := e.rehydrate(); err != nil {
		e.Stop()
		return err
	}

	e.ready.Store(true)
	e.logger.Info("Tracker engine started")
	return nil
}

// Stop stops the background loops and waits for them to finish
func (e *Engine) Stop() {
	e.logger.Info("Stopping tracker engine")
	e.ready.Store(false)
	e.poller.Stop()
	e.watcher.Stop()
	e.logger.Info("Tracker engine stopped")
}

// IsReady reports whether the engine finished startup
func (e *Engine) IsReady() bool {
	return e.ready.Load()
}

// Status summarises work still in flight
type Status struct {
	Ready           bool                    `json:"ready"`
	PendingHashes   []string                `json:"pendingHashes"`
	TrackedCommands []bridge.TrackedCommand `json:"trackedCommands"`
}

// Status returns the pending hash set and the cross-chain tracking set
func (e *Engine) Status() Status {
	pending := e.watcher.Pending()
	hashes := make([]string, 0, len(pending))
	for _, h := range pending {
		hashes = append(hashes, h.Hex())
	}
	return Status{
		Ready:           e.IsReady(),
		PendingHashes:   hashes,
		TrackedCommands: e.poller.Tracked(),
	}
}

// TrackSubmission starts watching the source receipt for hash
func (e *Engine) TrackSubmission(hash common.Hash) error {
	if _, err := e.watcher.Watch(hash); err != nil {
		return fmt.Errorf("failed to watch %s: %w", hash.Hex(), err)
	}
	return nil
}

// Forget stops watching and polling for tx. Callers use it when the record
// is deleted from the store.
func (e *Engine) Forget(tx bridge.Transaction) {
	if tx.TxHash != "" {
		e.watcher.Unwatch(common.HexToHash(tx.TxHash))
	}
	if e.poller.Untrack(tx.ID) {
		e.logger.Info("Stopped tracking removed transaction", zap.String("tx_id", tx.ID))
	}
}

func (e *Engine) rehydrate() error {
	var watched, tracked int
	for _, tx := range e.store.Pending() {
		switch {
		case tx.TxHash != "" && tx.CommandID == "":
			if _, err := e.watcher.Watch(common.HexToHash(tx.TxHash)); err != nil {
				return fmt.Errorf("failed to resume watch for %s: %w", tx.ID, err)
			}
			watched++
		case tx.Type.IsCrossChain() && tx.CommandID != "":
			e.poller.Track(bridge.TrackedCommand{
				TransactionID:      tx.ID,
				CommandID:          tx.CommandID,
				DestinationChainID: tx.DestinationChainID,
			})
			tracked++
		}
	}

	e.logger.Info("Resumed pending transactions",
		zap.Int("watched", watched),
		zap.Int("tracked", tracked))
	return nil
}

func (e *Engine) handleReceipt(ctx context.Context, r *types.Receipt) {
	tx, ok := e.store.FindByTxHash(r.TxHash.Hex())
	if !ok {
		e.logger.Warn("Receipt for unknown transaction", zap.String("tx_hash", r.TxHash.Hex()))
		return
	}

	log := e.logger.With(
		zap.String("tx_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("tx_hash", tx.TxHash))

	if r.Status == types.ReceiptStatusFailed {
		metrics.ReceiptsObserved.WithLabelValues("reverted").Inc()
		log.Warn("Source transaction reverted")
		e.finishByID(ctx, tx.ID, bridge.StatusFailed, bridge.Patch{}.WithMessage(MessageSourceReverted))
		return
	}
	metrics.ReceiptsObserved.WithLabelValues("success").Inc()

	if !tx.Type.IsCrossChain() {
		log.Info("Source transaction confirmed")
		e.finishByID(ctx, tx.ID, bridge.StatusCompleted, bridge.Patch{})
		return
	}

	cmdID, found := bridge.ExtractCommandID(tx.Type, r)
	if !found {
		metrics.ErrorsTotal.WithLabelValues("tracker", "command_id_missing").Inc()
		log.Warn("No command id found in receipt logs")
		return
	}

	commandID := cmdID.Hex()
	if tx.CommandID != "" && tx.CommandID != commandID {
		log.Warn("Ignoring different command id for transaction",
			zap.String("command_id", tx.CommandID),
			zap.String("ignored_command_id", commandID))
		commandID = tx.CommandID
	}

	if tx.CommandID == "" {
		if _, _, err := e.store.Update(ctx, tx.ID, bridge.Patch{}.WithCommandID(commandID)); err != nil {
			metrics.ErrorsTotal.WithLabelValues("tracker", "store_update").Inc()
			log.Error("Failed to store command id", zap.Error(err))
		}
	}

	log.Info("Derived command id", zap.String("command_id", commandID))
	e.poller.Track(bridge.TrackedCommand{
		TransactionID:      tx.ID,
		CommandID:          commandID,
		DestinationChainID: tx.DestinationChainID,
	})
}

// CommandPending keeps the transaction pending
func (e *Engine) CommandPending(ctx context.Context, cmd bridge.TrackedCommand) {
	_, found, err := e.store.Update(ctx, cmd.TransactionID, bridge.Patch{}.WithStatus(bridge.StatusPending))
	switch {
	case err != nil:
		e.logger.Error("Failed to update transaction",
			zap.String("tx_id", cmd.TransactionID),
			zap.Error(err))
	case !found:
		e.logger.Warn("Transaction no longer exists, untracking", zap.String("tx_id", cmd.TransactionID))
		e.poller.Untrack(cmd.TransactionID)
	}
}

// CommandExecuted completes the transaction with the destination hash
func (e *Engine) CommandExecuted(ctx context.Context, cmd bridge.TrackedCommand, destinationTxHash string) {
	patch := bridge.Patch{}
	if destinationTxHash != "" {
		patch = patch.WithDestinationTxHash(destinationTxHash)
	}
	e.finishByID(ctx, cmd.TransactionID, bridge.StatusCompleted, patch)
}

// CommandExhausted fails the transaction after the poll policy gave up
func (e *Engine) CommandExhausted(ctx context.Context, cmd bridge.TrackedCommand, attempts int) {
	e.logger.Warn("Relayer polling exhausted",
		zap.String("tx_id", cmd.TransactionID),
		zap.String("command_id", cmd.CommandID),
		zap.Int("attempts", attempts))
	e.finishByID(ctx, cmd.TransactionID, bridge.StatusFailed, bridge.Patch{}.WithMessage(MessagePollingExhausted))
}

func (e *Engine) finishByID(ctx context.Context, id string, status bridge.Status, patch bridge.Patch) {
	if before, err := e.store.Get(id); err == nil && before.Status != bridge.StatusPending {
		e.logger.Warn("Transaction already finished",
			zap.String("tx_id", id),
			zap.String("status", string(before.Status)))
		return
	}

	tx, found, err := e.store.Update(ctx, id, patch.WithStatus(status))
	switch {
	case err != nil:
		metrics.ErrorsTotal.WithLabelValues("tracker", "store_update").Inc()
		e.logger.Error("Failed to update transaction", zap.String("tx_id", id), zap.Error(err))
		return
	case !found:
		e.logger.Warn("Transaction no longer exists", zap.String("tx_id", id))
		return
	case tx.Status != status:
		e.logger.Warn("Transaction already finished",
			zap.String("tx_id", id),
			zap.String("status", string(tx.Status)))
		return
	}

	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(status)).Inc()
	if status == bridge.StatusCompleted {
		metrics.CompletionDuration.WithLabelValues(string(tx.Type)).
			Observe(time.Since(tx.CreatedAt()).Seconds())
	}
	e.logger.Info("Transaction finished",
		zap.String("tx_id", id),
		zap.String("status", string(status)))
}
