package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// GatewayMetaData holds the subset of the cross-chain gateway ABI used to
// send tokens and contract calls, plus the events the relayer picks up.
var GatewayMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"sendToken","stateMutability":"nonpayable","inputs":[
		{"name":"destinationChain","type":"string"},
		{"name":"destinationAddress","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"callContract","stateMutability":"nonpayable","inputs":[
		{"name":"destinationChain","type":"string"},
		{"name":"contractAddress","type":"string"},
		{"name":"payload","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"callContractWithToken","stateMutability":"nonpayable","inputs":[
		{"name":"destinationChain","type":"string"},
		{"name":"contractAddress","type":"string"},
		{"name":"payload","type":"bytes"},
		{"name":"symbol","type":"string"},
		{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"TokenSent","anonymous":false,"inputs":[
		{"name":"sender","type":"address","indexed":true},
		{"name":"destinationChain","type":"string","indexed":false},
		{"name":"destinationAddress","type":"string","indexed":false},
		{"name":"symbol","type":"string","indexed":false},
		{"name":"amount","type":"uint256","indexed":false}]},
	{"type":"event","name":"ContractCall","anonymous":false,"inputs":[
		{"name":"sender","type":"address","indexed":true},
		{"name":"destinationChain","type":"string","indexed":false},
		{"name":"destinationContractAddress","type":"string","indexed":false},
		{"name":"payloadHash","type":"bytes32","indexed":true},
		{"name":"payload","type":"bytes","indexed":false}]},
	{"type":"event","name":"ContractCallWithToken","anonymous":false,"inputs":[
		{"name":"sender","type":"address","indexed":true},
		{"name":"destinationChain","type":"string","indexed":false},
		{"name":"destinationContractAddress","type":"string","indexed":false},
		{"name":"payloadHash","type":"bytes32","indexed":true},
		{"name":"payload","type":"bytes","indexed":false},
		{"name":"symbol","type":"string","indexed":false},
		{"name":"amount","type":"uint256","indexed":false}]}
]`,
}

// Gateway is a write binding to a deployed gateway contract
type Gateway struct {
	Address  common.Address
	contract *bind.BoundContract
}

// NewGateway binds the gateway at address
func NewGateway(address common.Address, backend bind.ContractBackend) (*Gateway, error) {
	parsed, err := GatewayMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &Gateway{
		Address:  address,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// SendToken is a paid mutator transaction binding the contract method sendToken.
func (g *Gateway) SendToken(opts *bind.TransactOpts, destinationChain, destinationAddress, symbol string, amount *big.Int) (*types.Transaction, error) {
	return g.contract.Transact(opts, "sendToken", destinationChain, destinationAddress, symbol, amount)
}

// CallContract is a paid mutator transaction binding the contract method callContract.
func (g *Gateway) CallContract(opts *bind.TransactOpts, destinationChain, contractAddress string, payload []byte) (*types.Transaction, error) {
	return g.contract.Transact(opts, "callContract", destinationChain, contractAddress, payload)
}

// CallContractWithToken is a paid mutator transaction binding the contract method callContractWithToken.
func (g *Gateway) CallContractWithToken(opts *bind.TransactOpts, destinationChain, contractAddress string, payload []byte, symbol string, amount *big.Int) (*types.Transaction, error) {
	return g.contract.Transact(opts, "callContractWithToken", destinationChain, contractAddress, payload, symbol, amount)
}
