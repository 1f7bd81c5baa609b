// Package ethereum connects to the source chain: it reads receipts and, when a
// key is configured, signs bridge operations.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/DINetworks/DI-U2U/pkg/config"
	"github.com/DINetworks/DI-U2U/pkg/ethereum/contracts"
	"github.com/DINetworks/DI-U2U/pkg/keys"
	"github.com/DINetworks/DI-U2U/pkg/wallet"
)

// ErrSigningDisabled is returned by wallet methods when no private key is configured
var ErrSigningDisabled = errors.New("signing disabled: no wallet private key configured")

// Client represents a source chain client
type Client struct {
	chainCfg  config.ChainConfig
	walletCfg config.WalletConfig
	client    *ethclient.Client
	chainID   *big.Int
	logger    *zap.Logger

	privateKey *ecdsa.PrivateKey
	address    common.Address
	gateway    *contracts.Gateway
	token      *contracts.IU2U

	// serializes nonce selection across submissions
	sendMu sync.Mutex
}

var _ wallet.Wallet = (*Client)(nil)

// NewClient dials the RPC endpoint and checks it serves the configured chain
func NewClient(ctx context.Context, chainCfg config.ChainConfig, walletCfg config.WalletConfig, logger *zap.Logger) (*Client, error) {
	client, err := ethclient.DialContext(ctx, chainCfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID.Uint64() != chainCfg.ChainID {
		client.Close()
		return nil, fmt.Errorf("rpc serves chain %s, expected %d", chainID, chainCfg.ChainID)
	}

	c := &Client{
		chainCfg:  chainCfg,
		walletCfg: walletCfg,
		client:    client,
		chainID:   chainID,
		logger:    logger.With(zap.String("component", "ethereum")),
	}

	if walletCfg.Enabled() {
		if err := c.loadSigner(); err != nil {
			client.Close()
			return nil, err
		}
	}

	c.logger.Info("Connected to source chain",
		zap.Uint64("chain_id", chainCfg.ChainID),
		zap.Bool("signing_enabled", c.SigningEnabled()),
		zap.String("signer", c.address.Hex()))

	return c, nil
}

func (c *Client) loadSigner() error {
	privateKey, err := signingKey(c.walletCfg)
	if err != nil {
		return err
	}

	gateway, err := contracts.NewGateway(common.HexToAddress(c.walletCfg.GatewayAddress), c.client)
	if err != nil {
		return fmt.Errorf("failed to bind gateway contract: %w", err)
	}
	token, err := contracts.NewIU2U(common.HexToAddress(c.walletCfg.TokenAddress), c.client)
	if err != nil {
		return fmt.Errorf("failed to bind token contract: %w", err)
	}

	c.privateKey = privateKey
	c.address = crypto.PubkeyToAddress(privateKey.PublicKey)
	c.gateway = gateway
	c.token = token
	return nil
}

// signingKey resolves the wallet key from either the plaintext hex field or
// the encrypted field plus the master key held in the environment.
func signingKey(cfg config.WalletConfig) (*ecdsa.PrivateKey, error) {
	if cfg.EncryptedPrivateKey != "" {
		masterKey, err := keys.MasterKeyFromBase64(os.Getenv(cfg.MasterKeyEnv))
		if err != nil {
			return nil, fmt.Errorf("failed to load master key from %s: %w", cfg.MasterKeyEnv, err)
		}
		privateKey, err := keys.DecryptSigningKey(cfg.EncryptedPrivateKey, masterKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		return privateKey, nil
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	return privateKey, nil
}

// Close closes the RPC connection
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SigningEnabled reports whether the client can submit transactions
func (c *Client) SigningEnabled() bool {
	return c.privateKey != nil
}

// Address returns the signer address (zero when signing is disabled)
func (c *Client) Address() common.Address {
	return c.address
}

// TransactionReceipt returns the receipt of hash, or go-ethereum's NotFound
// while the transaction is pending.
func (c *Client) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return c.client.TransactionReceipt(ctx, hash)
}

// GetTransactor returns a transaction signer with the next pending nonce.
// Callers must hold sendMu.
func (c *Client) GetTransactor(ctx context.Context) (*bind.TransactOpts, error) {
	if !c.SigningEnabled() {
		return nil, ErrSigningDisabled
	}

	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	auth.Context = ctx
	auth.Nonce = new(big.Int).SetUint64(nonce)
	// zero lets bind estimate
	auth.GasLimit = c.walletCfg.GasLimit

	return auth, nil
}

func (c *Client) submit(ctx context.Context, op string, send func(*bind.TransactOpts) (*types.Transaction, error)) (common.Hash, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	auth, err := c.GetTransactor(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := send(auth)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to submit %s transaction: %w", op, err)
	}

	c.logger.Info("Transaction submitted",
		zap.String("operation", op),
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()))

	return tx.Hash(), nil
}

// Deposit wraps native coin into IU2U
func (c *Client) Deposit(ctx context.Context, req wallet.DepositRequest) (common.Hash, error) {
	return c.submit(ctx, "deposit", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		auth.Value = req.Amount
		return c.token.Deposit(auth)
	})
}

// Withdraw unwraps IU2U into native coin
func (c *Client) Withdraw(ctx context.Context, req wallet.WithdrawRequest) (common.Hash, error) {
	return c.submit(ctx, "withdraw", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.token.Withdraw(auth, req.Amount)
	})
}

func (c *Client) SendToken(ctx context.Context, req wallet.SendTokenRequest) (common.Hash, error) {
	return c.submit(ctx, "sendToken", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.gateway.SendToken(auth, req.DestinationChain, req.DestinationAddress, req.Symbol, req.Amount)
	})
}

func (c *Client) CallContract(ctx context.Context, req wallet.CallContractRequest) (common.Hash, error) {
	return c.submit(ctx, "callContract", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.gateway.CallContract(auth, req.DestinationChain, req.ContractAddress, req.Payload)
	})
}

func (c *Client) CallContractWithToken(ctx context.Context, req wallet.CallContractRequest) (common.Hash, error) {
	return c.submit(ctx, "callContractWithToken", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.gateway.CallContractWithToken(auth, req.DestinationChain, req.ContractAddress, req.Payload, req.Symbol, req.Amount)
	})
}
