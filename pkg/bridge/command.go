package bridge

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Gateway event signatures emitted by cross-chain operations
const (
	TokenSentSignature             = "TokenSent(address,string,string,string,uint256)"
	ContractCallSignature          = "ContractCall(address,string,string,bytes32,bytes)"
	ContractCallWithTokenSignature = "ContractCallWithToken(address,string,string,bytes32,bytes,string,uint256)"
)

// Topic-0 hashes of the gateway events, keccak256 of the signatures above
var (
	TokenSentTopic             = common.HexToHash("0x651d93f66c4329630e8d0f62488eff599e3be484da587335e8dc0fcf46062726")
	ContractCallTopic          = common.HexToHash("0x30ae6cc78c27e651745bf2ad08a11de83910ac1e347a52f7ac898c0fbef94dae")
	ContractCallWithTokenTopic = common.HexToHash("0x7e50569d26be643bda7757722291ec66b1be66d8283474ae3fab5a98f878a7a2")
)

var eventTopics = map[TxType]common.Hash{
	TypeSendToken:             TokenSentTopic,
	TypeCallContract:          ContractCallTopic,
	TypeCallContractWithToken: ContractCallWithTokenTopic,
}

// EventTopic returns the topic-0 hash of the gateway event emitted by t
func EventTopic(t TxType) (common.Hash, bool) {
	h, ok := eventTopics[t]
	return h, ok
}

// ComputeCommandID derives the relayer command id for the event at position
// within the receipt logs of txHash.
func ComputeCommandID(txHash common.Hash, position int) common.Hash {
	// Hex() is lowercase 0x-prefixed
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s-%d", txHash.Hex(), position)))
}

// ExtractCommandID finds the first log in the receipt matching the event of
// operation t and returns the derived command id. It reports false for
// non-cross-chain types, nil receipts and receipts without a matching log.
func ExtractCommandID(t TxType, receipt *types.Receipt) (common.Hash, bool) {
	topic, ok := eventTopics[t]
	if !ok || receipt == nil {
		return common.Hash{}, false
	}
	for i, l := range receipt.Logs {
		if l == nil || len(l.Topics) == 0 {
			continue
		}
		if l.Topics[0] == topic {
			return ComputeCommandID(receipt.TxHash, i), true
		}
	}
	return common.Hash{}, false
}
