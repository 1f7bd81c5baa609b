package txstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

// FileStorage keeps the JSON-encoded list in a single file
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load returns an empty list when the file does not exist yet
func (f *FileStorage) Load(_ context.Context) ([]bridge.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []bridge.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return Decode(data)
}

// Save writes to a temporary file and renames it over the target
func (f *FileStorage) Save(_ context.Context, txs []bridge.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := Encode(txs)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Encode serializes the list the way every key/value backend stores it
func Encode(txs []bridge.Transaction) ([]byte, error) {
	if txs == nil {
		txs = []bridge.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transactions: %w", err)
	}
	return data, nil
}

// Decode parses a list produced by Encode
func Decode(data []byte) ([]bridge.Transaction, error) {
	if len(data) == 0 {
		return []bridge.Transaction{}, nil
	}
	var txs []bridge.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	if txs == nil {
		txs = []bridge.Transaction{}
	}
	return txs, nil
}
