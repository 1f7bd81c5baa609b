// Package wallet defines the signing wallet used to submit bridge operations.
package wallet

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrUserRejected is returned when the signer declines to sign a transaction
var ErrUserRejected = errors.New("user rejected the request")

// UserRejectedCode is the EIP-1193 provider error code for a rejected request
const UserRejectedCode = 4001

// Wallet signs and submits bridge operations on the source chain. Every
// method returns the hash of the submitted transaction.
//
//go:generate mockery --name Wallet --output mocks --outpkg mocks --filename mock_wallet.go --with-expecter
type Wallet interface {
	Deposit(ctx context.Context, req DepositRequest) (common.Hash, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (common.Hash, error)
	SendToken(ctx context.Context, req SendTokenRequest) (common.Hash, error)
	CallContract(ctx context.Context, req CallContractRequest) (common.Hash, error)
	CallContractWithToken(ctx context.Context, req CallContractRequest) (common.Hash, error)
}

// DepositRequest wraps native coin into the bridge token
type DepositRequest struct {
	Amount *big.Int
}

// WithdrawRequest unwraps the bridge token into native coin
type WithdrawRequest struct {
	Amount *big.Int
}

// SendTokenRequest sends tokens to an address on another chain. DestinationChain
// is the relayer name of the chain.
type SendTokenRequest struct {
	DestinationChain   string
	DestinationAddress string
	Symbol             string
	Amount             *big.Int
}

// CallContractRequest calls a contract on another chain, optionally with tokens
// attached (Symbol and Amount are only used by CallContractWithToken).
type CallContractRequest struct {
	DestinationChain string
	ContractAddress  string
	Payload          []byte
	Symbol           string
	Amount           *big.Int
}

// IsUserRejection reports whether err means the user declined to sign. It
// recognises ErrUserRejected, JSON-RPC errors with code 4001 and the messages
// wallets commonly return.
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == UserRejectedCode {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied")
}
