package ethereum

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/pkg/config"
	"github.com/DINetworks/DI-U2U/pkg/keys"
	"github.com/DINetworks/DI-U2U/pkg/wallet"
)

// newRPCServer answers JSON-RPC calls from a method -> result table
func newRPCServer(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode rpc request: %v", err)
			return
		}
		result, ok := results[req.Method]
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found: " + req.Method}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_ChainIDMismatch(t *testing.T) {
	srv := newRPCServer(t, map[string]any{"eth_chainId": "0x1"})

	_, err := NewClient(context.Background(), config.ChainConfig{RPCURL: srv.URL, ChainID: 2484}, config.WalletConfig{}, zap.NewNop())
	if err == nil {
		t.Fatal("expected chain id mismatch error")
	}
}

func TestClient_ReadOnly(t *testing.T) {
	srv := newRPCServer(t, map[string]any{
		"eth_chainId":               "0x9b4",
		"eth_getTransactionReceipt": nil,
	})
	ctx := context.Background()

	c, err := NewClient(ctx, config.ChainConfig{RPCURL: srv.URL, ChainID: 2484}, config.WalletConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	defer c.Close()

	if c.SigningEnabled() {
		t.Error("signing should be disabled without a key")
	}

	_, err = c.TransactionReceipt(ctx, common.HexToHash("0x01"))
	if !errors.Is(err, goethereum.NotFound) {
		t.Errorf("expected NotFound for pending receipt, got %v", err)
	}

	_, err = c.SendToken(ctx, wallet.SendTokenRequest{DestinationChain: "polygon"})
	if !errors.Is(err, ErrSigningDisabled) {
		t.Errorf("expected ErrSigningDisabled, got %v", err)
	}
}

func TestNewClient_InvalidKey(t *testing.T) {
	srv := newRPCServer(t, map[string]any{"eth_chainId": "0x9b4"})

	_, err := NewClient(context.Background(),
		config.ChainConfig{RPCURL: srv.URL, ChainID: 2484},
		config.WalletConfig{PrivateKey: "0xnot-a-key", GatewayAddress: "0x01", TokenAddress: "0x02"},
		zap.NewNop())
	if err == nil {
		t.Fatal("expected error for invalid private key")
	}
}

func TestNewClient_WithSigner(t *testing.T) {
	srv := newRPCServer(t, map[string]any{"eth_chainId": "0x9b4"})

	c, err := NewClient(context.Background(),
		config.ChainConfig{RPCURL: srv.URL, ChainID: 2484},
		config.WalletConfig{
			PrivateKey:     "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
			GatewayAddress: "0x0000000000000000000000000000000000000001",
			TokenAddress:   "0x0000000000000000000000000000000000000002",
		},
		zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	defer c.Close()

	if !c.SigningEnabled() {
		t.Fatal("expected signing enabled")
	}
	want := common.HexToAddress("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23")
	if c.Address() != want {
		t.Errorf("expected signer %s, got %s", want.Hex(), c.Address().Hex())
	}
}

func TestSigningKey_Encrypted(t *testing.T) {
	privateKey, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	if err != nil {
		t.Fatalf("HexToECDSA failed: %v", err)
	}
	master, err := keys.GenerateMasterKey()
	if err != nil {
		t.Fatalf("GenerateMasterKey failed: %v", err)
	}
	encrypted, err := keys.EncryptSigningKey(privateKey, master)
	if err != nil {
		t.Fatalf("EncryptSigningKey failed: %v", err)
	}

	t.Setenv("TEST_TRACKER_MASTER_KEY", base64.StdEncoding.EncodeToString(master))

	got, err := signingKey(config.WalletConfig{
		EncryptedPrivateKey: encrypted,
		MasterKeyEnv:        "TEST_TRACKER_MASTER_KEY",
	})
	if err != nil {
		t.Fatalf("signingKey() failed: %v", err)
	}
	want := common.HexToAddress("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23")
	if crypto.PubkeyToAddress(got.PublicKey) != want {
		t.Errorf("expected signer %s, got %s", want.Hex(), crypto.PubkeyToAddress(got.PublicKey).Hex())
	}
}

func TestSigningKey_MissingMasterKey(t *testing.T) {
	t.Setenv("TEST_TRACKER_MASTER_KEY", "")

	_, err := signingKey(config.WalletConfig{
		EncryptedPrivateKey: "AAAA",
		MasterKeyEnv:        "TEST_TRACKER_MASTER_KEY",
	})
	if !errors.Is(err, keys.ErrInvalidMasterKey) {
		t.Fatalf("expected ErrInvalidMasterKey, got %v", err)
	}
}
