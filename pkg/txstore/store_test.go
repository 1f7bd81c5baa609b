package txstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/txstore/mocks"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() (string, error) {
		n++
		return fmt.Sprintf("tx-%d", n), nil
	})
}

func fixedClock(ms int64) Option {
	return WithClock(func() time.Time { return time.UnixMilli(ms) })
}

func newTestStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	return New(storage, zap.NewNop(), sequentialIDs(), fixedClock(1700000000000))
}

func TestStore_AddPrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := newTestStore(t, storage)

	first, err := store.Add(ctx, bridge.Transaction{Type: bridge.TypeDeposit, Amount: "1", Symbol: "U2U", TxHash: "0x01"})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	second, err := store.Add(ctx, bridge.Transaction{Type: bridge.TypeSendToken, Amount: "2", Symbol: "IU2U", TxHash: "0x02"})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(list))
	}
	if list[0].ID != second || list[1].ID != first {
		t.Errorf("expected newest first, got %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].Status != bridge.StatusPending {
		t.Errorf("expected pending status, got %s", list[0].Status)
	}
	if list[0].Timestamp != 1700000000000 {
		t.Errorf("unexpected timestamp %d", list[0].Timestamp)
	}

	persisted, _ := storage.Load(ctx)
	if len(persisted) != 2 || persisted[0].ID != second {
		t.Errorf("persisted list does not match memory: %+v", persisted)
	}
}

func TestStore_AddRejectsUnknownType(t *testing.T) {
	store := newTestStore(t, NewMemoryStorage())

	_, err := store.Add(context.Background(), bridge.Transaction{Type: "swap"})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestStore_UpdateUnknownIDIsNoop(t *testing.T) {
	storageMock := mocks.NewStorage(t)
	store := newTestStore(t, storageMock)

	_, found, err := store.Update(context.Background(), "missing", bridge.Patch{}.WithStatus(bridge.StatusCompleted))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected not found")
	}
	// storageMock has no expectations: nothing must be saved
}

func TestStore_UpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())

	id, _ := store.Add(ctx, bridge.Transaction{Type: bridge.TypeCallContract, TxHash: "0xaa"})

	got, found, err := store.Update(ctx, id, bridge.Patch{}.WithCommandID("0xcc"))
	if err != nil || !found {
		t.Fatalf("Update() = %v, %v", found, err)
	}
	if got.CommandID != "0xcc" || got.TxHash != "0xaa" || got.Status != bridge.StatusPending {
		t.Errorf("unexpected transaction after update: %+v", got)
	}

	stored, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if stored.CommandID != "0xcc" {
		t.Errorf("store not updated: %+v", stored)
	}
}

func TestStore_UnchangedPatchSkipsSave(t *testing.T) {
	ctx := context.Background()
	storageMock := mocks.NewStorage(t)
	storageMock.EXPECT().Save(ctx, mock.Anything).Return(nil).Once()
	store := newTestStore(t, storageMock)

	id, err := store.Add(ctx, bridge.Transaction{Type: bridge.TypeSendToken})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	if _, _, err := store.Update(ctx, id, bridge.Patch{}.WithStatus(bridge.StatusPending)); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
}

func TestStore_SaveFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	storageMock := mocks.NewStorage(t)
	storageMock.EXPECT().Save(ctx, mock.Anything).Return(nil).Once()
	storageMock.EXPECT().Save(ctx, mock.Anything).Return(errors.New("disk full")).Once()
	store := newTestStore(t, storageMock)

	id, err := store.Add(ctx, bridge.Transaction{Type: bridge.TypeWithdraw})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	_, _, err = store.Update(ctx, id, bridge.Patch{}.WithStatus(bridge.StatusCompleted))
	if err == nil {
		t.Fatal("expected error from failing storage")
	}

	tx, _ := store.Get(id)
	if tx.Status != bridge.StatusPending {
		t.Errorf("expected status to stay pending, got %s", tx.Status)
	}
}

func TestStore_RemoveAndReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())

	a, _ := store.Add(ctx, bridge.Transaction{Type: bridge.TypeDeposit})
	b, _ := store.Add(ctx, bridge.Transaction{Type: bridge.TypeWithdraw})

	removed, err := store.Remove(ctx, a)
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v", removed, err)
	}
	if _, err := store.Get(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if removed, _ := store.Remove(ctx, a); removed {
		t.Error("second Remove should report false")
	}
	if _, err := store.Get(b); err != nil {
		t.Errorf("unexpected error for remaining transaction: %v", err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if n := len(store.List()); n != 0 {
		t.Errorf("expected empty list after reset, got %d", n)
	}
}

func TestStore_PendingAndFindByTxHash(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())

	a, _ := store.Add(ctx, bridge.Transaction{Type: bridge.TypeDeposit, TxHash: "0xAbC"})
	b, _ := store.Add(ctx, bridge.Transaction{Type: bridge.TypeWithdraw, TxHash: "0xdef"})
	_, _, _ = store.Update(ctx, b, bridge.Patch{}.WithStatus(bridge.StatusCompleted))

	pending := store.Pending()
	if len(pending) != 1 || pending[0].ID != a {
		t.Errorf("unexpected pending list: %+v", pending)
	}

	tx, ok := store.FindByTxHash("0xabc")
	if !ok || tx.ID != a {
		t.Errorf("FindByTxHash() = %+v, %v", tx, ok)
	}
	if _, ok := store.FindByTxHash("0x999"); ok {
		t.Error("expected no match")
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "transactions.json")
	storage := NewFileStorage(path)

	empty, err := storage.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing file failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}

	store := newTestStore(t, storage)
	id, err := store.Add(ctx, bridge.Transaction{
		Type:               bridge.TypeSendToken,
		SourceChain:        "U2U Nebulas Testnet",
		DestinationChain:   "Polygon",
		DestinationChainID: 137,
		Amount:             "10.5",
		Symbol:             "IU2U",
		Recipient:          "0x1111111111111111111111111111111111111111",
		TxHash:             "0xaa",
	})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	_, _, _ = store.Update(ctx, id, bridge.Patch{}.WithCommandID("0xcc").WithDialogShown(true))

	reloaded := newTestStore(t, NewFileStorage(path))
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want, _ := store.Get(id)
	got, err := reloaded.Get(id)
	if err != nil {
		t.Fatalf("Get() after reload failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed data")
	}
	txs, err := Decode([]byte("null"))
	if err != nil || txs == nil || len(txs) != 0 {
		t.Errorf("Decode(null) = %v, %v", txs, err)
	}
}
