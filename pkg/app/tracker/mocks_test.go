package tracker

import (
	"context"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/initiator"
	"github.com/DINetworks/DI-U2U/pkg/tracker"
)

// MockInitiator is a mock implementation of Initiator
type MockInitiator struct {
	ExecuteDepositFunc      func(ctx context.Context, req initiator.DepositRequest) (string, error)
	ExecuteWithdrawFunc     func(ctx context.Context, req initiator.WithdrawRequest) (string, error)
	ExecuteSendTokenFunc    func(ctx context.Context, req initiator.SendTokenRequest) (string, error)
	ExecuteContractCallFunc func(ctx context.Context, req initiator.ContractCallRequest) (string, error)
}

func (m *MockInitiator) ExecuteDeposit(ctx context.Context, req initiator.DepositRequest) (string, error) {
	if m.ExecuteDepositFunc != nil {
		return m.ExecuteDepositFunc(ctx, req)
	}
	return "", nil
}

func (m *MockInitiator) ExecuteWithdraw(ctx context.Context, req initiator.WithdrawRequest) (string, error) {
	if m.ExecuteWithdrawFunc != nil {
		return m.ExecuteWithdrawFunc(ctx, req)
	}
	return "", nil
}

func (m *MockInitiator) ExecuteSendToken(ctx context.Context, req initiator.SendTokenRequest) (string, error) {
	if m.ExecuteSendTokenFunc != nil {
		return m.ExecuteSendTokenFunc(ctx, req)
	}
	return "", nil
}

func (m *MockInitiator) ExecuteContractCall(ctx context.Context, req initiator.ContractCallRequest) (string, error) {
	if m.ExecuteContractCallFunc != nil {
		return m.ExecuteContractCallFunc(ctx, req)
	}
	return "", nil
}

// MockTracker is a mock implementation of Tracker
type MockTracker struct {
	StatusFunc func() tracker.Status
	ForgetFunc func(tx bridge.Transaction)
}

func (m *MockTracker) Status() tracker.Status {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return tracker.Status{}
}

func (m *MockTracker) Forget(tx bridge.Transaction) {
	if m.ForgetFunc != nil {
		m.ForgetFunc(tx)
	}
}
