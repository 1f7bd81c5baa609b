package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// IU2UMetaData holds the wrap/unwrap subset of the IU2U token ABI
var IU2UMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
		{"name":"amount","type":"uint256"}],"outputs":[]}
]`,
}

// IU2U is a write binding to the IU2U token contract
type IU2U struct {
	Address  common.Address
	contract *bind.BoundContract
}

// NewIU2U binds the token at address
func NewIU2U(address common.Address, backend bind.ContractBackend) (*IU2U, error) {
	parsed, err := IU2UMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &IU2U{
		Address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Deposit wraps opts.Value of native coin.
func (t *IU2U) Deposit(opts *bind.TransactOpts) (*types.Transaction, error) {
	return t.contract.Transact(opts, "deposit")
}

// Withdraw unwraps amount of IU2U.
func (t *IU2U) Withdraw(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "withdraw", amount)
}
