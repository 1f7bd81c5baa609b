// Package txstore holds the canonical list of bridge transactions and
// persists it through a pluggable Storage backend.
package txstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

var (
	// ErrNotFound is returned when no transaction has the requested id
	ErrNotFound = errors.New("transaction not found")
	// ErrInvalidType is returned by Add for unknown operation types
	ErrInvalidType = errors.New("invalid transaction type")
)

// Storage persists the full transaction list.
//
//go:generate mockery --name Storage --output mocks --outpkg mocks --with-expecter
type Storage interface {
	Load(ctx context.Context) ([]bridge.Transaction, error)
	Save(ctx context.Context, txs []bridge.Transaction) error
}

// Store is the in-memory transaction list, newest first. Every mutation
// writes the full list through the Storage; a failed write leaves the
// in-memory list unchanged.
type Store struct {
	mu      sync.RWMutex
	txs     []bridge.Transaction
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
	newID   func() (string, error)
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the creation time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides transaction id generation
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a Store backed by storage
func New(storage Storage, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  logger.With(zap.String("component", "txstore")),
		now:     time.Now,
		newID:   newV7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Load replaces the in-memory list with the persisted one
func (s *Store) Load(ctx context.Context) error {
	txs, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	s.mu.Lock()
	s.txs = txs
	s.mu.Unlock()

	s.logger.Info("Loaded transactions", zap.Int("count", len(txs)))
	return nil
}

// Add assigns an id and creation timestamp to tx, prepends it and persists
// the list. An empty status defaults to pending.
func (s *Store) Add(ctx context.Context, tx bridge.Transaction) (string, error) {
	if !tx.Type.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}

	id, err := s.newID()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	tx.ID = id
	tx.Timestamp = s.now().UnixMilli()
	if tx.Status == "" {
		tx.Status = bridge.StatusPending
	}
	if !tx.Type.IsCrossChain() {
		tx.CommandID = ""
		tx.DestinationTxHash = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]bridge.Transaction, 0, len(s.txs)+1)
	next = append(next, tx)
	next = append(next, s.txs...)
	if err := s.commit(ctx, next); err != nil {
		return "", err
	}
	return id, nil
}

// Update merges patch into the transaction with the given id. It reports
// false without error when the id is unknown. Nothing is persisted when the
// patch does not change the transaction.
func (s *Store) Update(ctx context.Context, id string, patch bridge.Patch) (bridge.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return bridge.Transaction{}, false, nil
	}

	updated := s.txs[idx]
	patch.Apply(&updated)
	if updated == s.txs[idx] {
		return updated, true, nil
	}

	next := make([]bridge.Transaction, len(s.txs))
	copy(next, s.txs)
	next[idx] = updated
	if err := s.commit(ctx, next); err != nil {
		return bridge.Transaction{}, true, err
	}
	return updated, true, nil
}

// Remove deletes the transaction with the given id
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := make([]bridge.Transaction, 0, len(s.txs)-1)
	next = append(next, s.txs[:idx]...)
	next = append(next, s.txs[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

// Reset clears the list
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []bridge.Transaction{})
}

// Get returns the transaction with the given id
func (s *Store) Get(id string) (bridge.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return bridge.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.txs[idx], nil
}

// FindByTxHash returns the transaction whose source hash matches, ignoring case
func (s *Store) FindByTxHash(hash string) (bridge.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.txs {
		if tx.TxHash != "" && strings.EqualFold(tx.TxHash, hash) {
			return tx, true
		}
	}
	return bridge.Transaction{}, false
}

// List returns a copy of all transactions, newest first
func (s *Store) List() []bridge.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bridge.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Pending returns the transactions still in the pending status
func (s *Store) Pending() []bridge.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []bridge.Transaction
	for _, tx := range s.txs {
		if tx.Status == bridge.StatusPending {
			out = append(out, tx)
		}
	}
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.txs {
		if s.txs[i].ID == id {
			return i
		}
	}
	return -1
}

// commit must be called with mu held
func (s *Store) commit(ctx context.Context, next []bridge.Transaction) error {
	if err := s.storage.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist transactions", zap.Error(err))
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.txs = next
	return nil
}
