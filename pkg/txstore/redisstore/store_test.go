package redisstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

// Set TRACKER_TEST_REDIS_ADDR (e.g. localhost:6379) to run against a live server
func requireRedis(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("TRACKER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping redis test: TRACKER_TEST_REDIS_ADDR not set")
	}
	return addr
}

func TestStorage_RoundTrip(t *testing.T) {
	addr := requireRedis(t)
	ctx := context.Background()

	key := fmt.Sprintf("bridge_transactions_test_%d", time.Now().UnixNano())
	s := New(Config{Addr: addr, Key: key})
	t.Cleanup(func() {
		_ = s.Save(ctx, nil)
		_ = s.Close()
	})

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping() failed: %v", err)
	}

	empty, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing key failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}

	want := []bridge.Transaction{
		{ID: "b", Type: bridge.TypeCallContract, Status: bridge.StatusPending, TxHash: "0x02", CommandID: "0xcc", DestinationChainID: 137},
		{ID: "a", Type: bridge.TypeDeposit, Status: bridge.StatusCompleted, TxHash: "0x01", Timestamp: 1700000000000},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

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
}

func TestNewWithPool_DefaultKey(t *testing.T) {
	s := NewWithPool(nil, "")
	if s.key != DefaultKey {
		t.Errorf("expected default key %q, got %q", DefaultKey, s.key)
	}
}
