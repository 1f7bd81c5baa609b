package pgstore

import (
	"context"
	"testing"

	"go.uber.org/zap"

	mghelper "github.com/DINetworks/DI-U2U/pkg/pgutil/migrations"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/pgutil"
	"github.com/DINetworks/DI-U2U/pkg/txstore"
)

func setupStorage(t *testing.T) (context.Context, *Storage) {
	t.Helper()
	pgutil.RequireDocker(t)

	ctx := context.Background()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	if err := mghelper.CreateSchema(ctx, db, &TransactionDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return ctx, New(db)
}

func TestStorage_RoundTripPreservesOrder(t *testing.T) {
	ctx, s := setupStorage(t)

	empty, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on empty table failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no transactions, got %d", len(empty))
	}

	want := []bridge.Transaction{
		{
			ID: "c", Type: bridge.TypeCallContractWithToken, Status: bridge.StatusPending,
			SourceChain: "U2U Nebulas Testnet", DestinationChain: "Polygon", DestinationChainID: 137,
			Amount: "5", Symbol: "IU2U", ContractAddress: "0x2222222222222222222222222222222222222222",
			TxHash: "0x03", CommandID: "0xcc", Timestamp: 3,
		},
		{ID: "b", Type: bridge.TypeWithdraw, Status: bridge.StatusFailed, Message: "source transaction reverted", TxHash: "0x02", Timestamp: 2},
		{ID: "a", Type: bridge.TypeDeposit, Status: bridge.StatusCompleted, DialogShown: true, TxHash: "0x01", Timestamp: 1},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	pgutil.AssertRowCount(t, s.db, "bridge_transactions", 3)

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transaction %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}

	// A shorter list replaces the previous one
	if err := s.Save(ctx, want[:1]); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	pgutil.AssertRowCount(t, s.db, "bridge_transactions", 1)

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	pgutil.AssertRowCount(t, s.db, "bridge_transactions", 0)
}

func TestStorage_BacksTxStore(t *testing.T) {
	ctx, s := setupStorage(t)

	store := txstore.New(s, zap.NewNop())
	id, err := store.Add(ctx, bridge.Transaction{Type: bridge.TypeSendToken, TxHash: "0xaa", DestinationChainID: 1})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if _, _, err := store.Update(ctx, id, bridge.Patch{}.WithCommandID("0xcc")); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	reloaded := txstore.New(s, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	tx, err := reloaded.Get(id)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if tx.CommandID != "0xcc" || tx.Status != bridge.StatusPending {
		t.Errorf("unexpected reloaded transaction: %+v", tx)
	}
}
