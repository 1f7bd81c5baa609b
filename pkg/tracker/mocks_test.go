package tracker

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/DINetworks/DI-U2U/pkg/relayer"
)

// MockReceiptProvider is a mock implementation of receipt.Provider
type MockReceiptProvider struct {
	TransactionReceiptFunc func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

func (m *MockReceiptProvider) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if m.TransactionReceiptFunc != nil {
		return m.TransactionReceiptFunc(ctx, hash)
	}
	return nil, ethereum.NotFound
}

// MockRelayerClient is a mock implementation of relayer.Client
type MockRelayerClient struct {
	CommandStatusFunc func(ctx context.Context, commandID, chainName string) (relayer.Status, error)
}

func (m *MockRelayerClient) CommandStatus(ctx context.Context, commandID, chainName string) (relayer.Status, error) {
	if m.CommandStatusFunc != nil {
		return m.CommandStatusFunc(ctx, commandID, chainName)
	}
	return relayer.Status{Pending: true}, nil
}
