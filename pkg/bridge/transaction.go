package bridge

import "time"

// TxType identifies the bridge operation a transaction was submitted for
type TxType string

const (
	TypeDeposit               TxType = "deposit"
	TypeWithdraw              TxType = "withdraw"
	TypeSendToken             TxType = "sendToken"
	TypeCallContract          TxType = "callContract"
	TypeCallContractWithToken TxType = "callContractWithToken"
)

// Valid reports whether t is one of the known operation types
func (t TxType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeSendToken, TypeCallContract, TypeCallContractWithToken:
		return true
	}
	return false
}

// IsCrossChain reports whether the operation is executed on a destination chain
// by the relayer after the source transaction confirms.
func (t TxType) IsCrossChain() bool {
	switch t {
	case TypeSendToken, TypeCallContract, TypeCallContractWithToken:
		return true
	}
	return false
}

// Status represents the lifecycle state of a bridge transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// CanTransition reports whether a transaction may move from one status to another.
// Terminal statuses never change; re-applying the current status is allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return from == StatusPending && (to == StatusCompleted || to == StatusFailed)
}

// Transaction is a single user-initiated bridge operation
type Transaction struct {
	ID                 string `json:"id"`
	Type               TxType `json:"type"`
	SourceChain        string `json:"sourceChain"`
	DestinationChain   string `json:"destinationChain,omitempty"`
	DestinationChainID uint64 `json:"destinationChainId,omitempty"`
	Amount             string `json:"amount,omitempty"`
	Symbol             string `json:"symbol,omitempty"`
	Recipient          string `json:"recipient,omitempty"`
	ContractAddress    string `json:"contractAddress,omitempty"`
	Status             Status `json:"status"`
	TxHash             string `json:"txHash,omitempty"`
	CommandID          string `json:"commandId,omitempty"`
	DestinationTxHash  string `json:"destinationTxHash,omitempty"`
	DialogShown        bool   `json:"dialogShown"`
	Message            string `json:"message,omitempty"`
	// Timestamp is the creation time in unix milliseconds
	Timestamp int64 `json:"timestamp"`
}

// CreatedAt returns the creation time
func (t *Transaction) CreatedAt() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Status            *Status
	TxHash            *string
	CommandID         *string
	DestinationTxHash *string
	DialogShown       *bool
	Message           *string
}

func (p Patch) WithStatus(s Status) Patch {
	p.Status = &s
	return p
}

func (p Patch) WithTxHash(h string) Patch {
	p.TxHash = &h
	return p
}

func (p Patch) WithCommandID(id string) Patch {
	p.CommandID = &id
	return p
}

func (p Patch) WithDestinationTxHash(h string) Patch {
	p.DestinationTxHash = &h
	return p
}

func (p Patch) WithDialogShown(shown bool) Patch {
	p.DialogShown = &shown
	return p
}

func (p Patch) WithMessage(msg string) Patch {
	p.Message = &msg
	return p
}

// Apply merges the patch into tx. A patch carrying a status change that is
// not allowed by CanTransition is dropped as a whole. Command ids and
// destination hashes are ignored on operations that never leave the source
// chain.
func (p Patch) Apply(tx *Transaction) {
	if p.Status != nil {
		if !CanTransition(tx.Status, *p.Status) {
			return
		}
		tx.Status = *p.Status
	}
	if p.TxHash != nil {
		tx.TxHash = *p.TxHash
	}
	if tx.Type.IsCrossChain() {
		if p.CommandID != nil {
			tx.CommandID = *p.CommandID
		}
		if p.DestinationTxHash != nil {
			tx.DestinationTxHash = *p.DestinationTxHash
		}
	}
	if p.DialogShown != nil {
		tx.DialogShown = *p.DialogShown
	}
	if p.Message != nil {
		tx.Message = *p.Message
	}
}

// TrackedCommand links a transaction to the command the relayer executes on the
// destination chain.
type TrackedCommand struct {
	TransactionID      string `json:"transactionId"`
	CommandID          string `json:"commandId"`
	DestinationChainID uint64 `json:"destinationChainId"`
}
