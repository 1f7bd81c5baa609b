package txstore

import (
	"context"
	"sync"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

// MemoryStorage keeps the list in process memory
type MemoryStorage struct {
	mu  sync.Mutex
	txs []bridge.Transaction
}

func NewMemoryStorage(initial ...bridge.Transaction) *MemoryStorage {
	return &MemoryStorage{txs: initial}
}

func (m *MemoryStorage) Load(_ context.Context) ([]bridge.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bridge.Transaction, len(m.txs))
	copy(out, m.txs)
	return out, nil
}

func (m *MemoryStorage) Save(_ context.Context, txs []bridge.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = make([]bridge.Transaction, len(txs))
	copy(m.txs, txs)
	return nil
}
