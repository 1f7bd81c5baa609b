// Package initiator submits bridge operations through the wallet and records
// them as pending transactions.
package initiator

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/wallet"
)

// ErrInvalidRequest is returned when a request fails validation
var ErrInvalidRequest = errors.New("invalid request")

// TransactionStore records submitted transactions
type TransactionStore interface {
	Add(ctx context.Context, tx bridge.Transaction) (string, error)
}

// Submitter starts tracking a submitted source transaction
type Submitter interface {
	TrackSubmission(hash common.Hash) error
}

// DepositRequest wraps native coin into the bridge token
type DepositRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// WithdrawRequest unwraps the bridge token into native coin
type WithdrawRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// SendTokenRequest sends tokens to an address on another chain
type SendTokenRequest struct {
	DestinationChainID uint64 `json:"destinationChainId" validate:"required"`
	DestinationAddress string `json:"destinationAddress" validate:"required,eth_addr"`
	Symbol             string `json:"symbol" validate:"required"`
	Amount             string `json:"amount" validate:"required"`
}

// ContractCallRequest calls a contract on another chain. Setting Amount
// attaches tokens to the call.
type ContractCallRequest struct {
	DestinationChainID uint64 `json:"destinationChainId" validate:"required"`
	ContractAddress    string `json:"contractAddress" validate:"required,eth_addr"`
	Payload            string `json:"payload"`
	Symbol             string `json:"symbol" validate:"required_with=Amount"`
	Amount             string `json:"amount"`
}

// Config describes the source chain and token units
type Config struct {
	SourceChain  string
	Decimals     int32
	NativeSymbol string
	TokenSymbol  string
}

// Initiator submits bridge operations
type Initiator struct {
	wallet    wallet.Wallet
	store     TransactionStore
	submitter Submitter
	chains    *bridge.Chains
	cfg       Config
	validate  *validator.Validate
	logger    *zap.Logger
}

// New creates an initiator
func New(w wallet.Wallet, store TransactionStore, submitter Submitter, chains *bridge.Chains, cfg Config, logger *zap.Logger) *Initiator {
	return &Initiator{
		wallet:    w,
		store:     store,
		submitter: submitter,
		chains:    chains,
		cfg:       cfg,
		validate:  validator.New(),
		logger:    logger.With(zap.String("component", "initiator")),
	}
}

// ExecuteDeposit wraps native coin and returns the source transaction hash.
// A rejected signature returns an empty hash and no error.
func (i *Initiator) ExecuteDeposit(ctx context.Context, req DepositRequest) (string, error) {
	if err := i.check(req); err != nil {
		return "", err
	}
	amount, err := i.amount(req.Amount)
	if err != nil {
		return "", err
	}

	hash, err := i.wallet.Deposit(ctx, wallet.DepositRequest{Amount: amount})
	return i.record(ctx, bridge.Transaction{
		Type:   bridge.TypeDeposit,
		Amount: req.Amount,
		Symbol: i.cfg.NativeSymbol,
	}, hash, err)
}

// ExecuteWithdraw unwraps the bridge token and returns the source transaction
// hash. A rejected signature returns an empty hash and no error.
func (i *Initiator) ExecuteWithdraw(ctx context.Context, req WithdrawRequest) (string, error) {
	if err := i.check(req); err != nil {
		return "", err
	}
	amount, err := i.amount(req.Amount)
	if err != nil {
		return "", err
	}

	hash, err := i.wallet.Withdraw(ctx, wallet.WithdrawRequest{Amount: amount})
	return i.record(ctx, bridge.Transaction{
		Type:   bridge.TypeWithdraw,
		Amount: req.Amount,
		Symbol: i.cfg.TokenSymbol,
	}, hash, err)
}

// ExecuteSendToken sends tokens to another chain and returns the source
// transaction hash. A rejected signature returns an empty hash and no error.
func (i *Initiator) ExecuteSendToken(ctx context.Context, req SendTokenRequest) (string, error) {
	if err := i.check(req); err != nil {
		return "", err
	}
	chain, err := i.destination(req.DestinationChainID)
	if err != nil {
		return "", err
	}
	amount, err := i.amount(req.Amount)
	if err != nil {
		return "", err
	}

	hash, err := i.wallet.SendToken(ctx, wallet.SendTokenRequest{
		DestinationChain:   chain.RelayerName,
		DestinationAddress: req.DestinationAddress,
		Symbol:             req.Symbol,
		Amount:             amount,
	})
	return i.record(ctx, bridge.Transaction{
		Type:               bridge.TypeSendToken,
		DestinationChain:   chain.Name,
		DestinationChainID: chain.ID,
		Amount:             req.Amount,
		Symbol:             req.Symbol,
		Recipient:          req.DestinationAddress,
	}, hash, err)
}

// ExecuteContractCall calls a contract on another chain, with tokens
// attached when the request carries an amount. It returns the source
// transaction hash; a rejected signature returns an empty hash and no error.
func (i *Initiator) ExecuteContractCall(ctx context.Context, req ContractCallRequest) (string, error) {
	if err := i.check(req); err != nil {
		return "", err
	}
	chain, err := i.destination(req.DestinationChainID)
	if err != nil {
		return "", err
	}

	payload := []byte{}
	if req.Payload != "" && req.Payload != "0x" {
		payload, err = hexutil.Decode(req.Payload)
		if err != nil {
			return "", fmt.Errorf("%w: payload: %w", ErrInvalidRequest, err)
		}
	}

	call := wallet.CallContractRequest{
		DestinationChain: chain.RelayerName,
		ContractAddress:  req.ContractAddress,
		Payload:          payload,
	}
	tx := bridge.Transaction{
		Type:               bridge.TypeCallContract,
		DestinationChain:   chain.Name,
		DestinationChainID: chain.ID,
		ContractAddress:    req.ContractAddress,
	}

	var hash common.Hash
	if req.Amount == "" {
		hash, err = i.wallet.CallContract(ctx, call)
		return i.record(ctx, tx, hash, err)
	}

	call.Amount, err = i.amount(req.Amount)
	if err != nil {
		return "", err
	}
	call.Symbol = req.Symbol
	tx.Type = bridge.TypeCallContractWithToken
	tx.Amount = req.Amount
	tx.Symbol = req.Symbol

	hash, err = i.wallet.CallContractWithToken(ctx, call)
	return i.record(ctx, tx, hash, err)
}

// record stores the submitted transaction as pending and hands its hash to
// the tracker. Wallet errors leave no record.
func (i *Initiator) record(ctx context.Context, tx bridge.Transaction, hash common.Hash, submitErr error) (string, error) {
	log := i.logger.With(zap.String("type", string(tx.Type)))

	if submitErr != nil {
		if wallet.IsUserRejection(submitErr) {
			log.Info("User rejected transaction")
			return "", nil
		}
		return "", fmt.Errorf("failed to submit %s: %w", tx.Type, submitErr)
	}

	tx.SourceChain = i.cfg.SourceChain
	tx.Status = bridge.StatusPending
	tx.TxHash = hash.Hex()

	id, err := i.store.Add(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to record %s %s: %w", tx.Type, tx.TxHash, err)
	}

	// A watch that cannot start now is resumed from the store on the next start.
	if err := i.submitter.TrackSubmission(hash); err != nil {
		log.Error("Failed to track submission", zap.String("tx_id", id), zap.Error(err))
	}

	log.Info("Submitted bridge transaction",
		zap.String("tx_id", id),
		zap.String("tx_hash", tx.TxHash))
	return tx.TxHash, nil
}

func (i *Initiator) check(req any) error {
	if err := i.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func (i *Initiator) amount(s string) (*big.Int, error) {
	v, err := wallet.ParseAmount(s, i.cfg.Decimals)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return v, nil
}

func (i *Initiator) destination(chainID uint64) (bridge.Chain, error) {
	chain, err := i.chains.Lookup(chainID)
	if err != nil {
		return bridge.Chain{}, fmt.Errorf("%w: destination: %w", ErrInvalidRequest, err)
	}
	return chain, nil
}
