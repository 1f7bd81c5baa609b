package pgstore

import (
	"github.com/uptrace/bun"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
)

// TransactionDao maps to the 'bridge_transactions' table. Position keeps the
// newest-first order of the in-memory list.
type TransactionDao struct {
	bun.BaseModel      `bun:"table:bridge_transactions,alias:bt"`
	ID                 string  `bun:"id,pk,type:varchar(64)"`
	Position           int     `bun:"position,notnull"`
	Type               string  `bun:"type,notnull,type:varchar(32)"`
	Status             string  `bun:"status,notnull,type:varchar(16)"`
	SourceChain        string  `bun:"source_chain,notnull,type:varchar(128)"`
	DestinationChain   *string `bun:"destination_chain,type:varchar(128)"`
	DestinationChainID *int64  `bun:"destination_chain_id"`
	Amount             *string `bun:"amount,type:varchar(78)"`
	Symbol             *string `bun:"symbol,type:varchar(32)"`
	Recipient          *string `bun:"recipient,type:varchar(128)"`
	ContractAddress    *string `bun:"contract_address,type:varchar(42)"`
	TxHash             *string `bun:"tx_hash,type:varchar(66)"`
	CommandID          *string `bun:"command_id,type:varchar(66)"`
	DestinationTxHash  *string `bun:"destination_tx_hash,type:varchar(66)"`
	DialogShown        bool    `bun:"dialog_shown,notnull,default:false"`
	Message            *string `bun:"message,type:text"`
	CreatedAtMillis    int64   `bun:"created_at_ms,notnull"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toTransactionDao converts a bridge.Transaction to TransactionDao.
func toTransactionDao(tx *bridge.Transaction, position int) *TransactionDao {
	dao := &TransactionDao{
		ID:                tx.ID,
		Position:          position,
		Type:              string(tx.Type),
		Status:            string(tx.Status),
		SourceChain:       tx.SourceChain,
		DestinationChain:  optional(tx.DestinationChain),
		Amount:            optional(tx.Amount),
		Symbol:            optional(tx.Symbol),
		Recipient:         optional(tx.Recipient),
		ContractAddress:   optional(tx.ContractAddress),
		TxHash:            optional(tx.TxHash),
		CommandID:         optional(tx.CommandID),
		DestinationTxHash: optional(tx.DestinationTxHash),
		DialogShown:       tx.DialogShown,
		Message:           optional(tx.Message),
		CreatedAtMillis:   tx.Timestamp,
	}
	if tx.DestinationChainID != 0 {
		id := int64(tx.DestinationChainID)
		dao.DestinationChainID = &id
	}
	return dao
}

// toTransaction converts a TransactionDao to bridge.Transaction.
func toTransaction(dao *TransactionDao) bridge.Transaction {
	tx := bridge.Transaction{
		ID:                dao.ID,
		Type:              bridge.TxType(dao.Type),
		Status:            bridge.Status(dao.Status),
		SourceChain:       dao.SourceChain,
		DestinationChain:  deref(dao.DestinationChain),
		Amount:            deref(dao.Amount),
		Symbol:            deref(dao.Symbol),
		Recipient:         deref(dao.Recipient),
		ContractAddress:   deref(dao.ContractAddress),
		TxHash:            deref(dao.TxHash),
		CommandID:         deref(dao.CommandID),
		DestinationTxHash: deref(dao.DestinationTxHash),
		DialogShown:       dao.DialogShown,
		Message:           deref(dao.Message),
		Timestamp:         dao.CreatedAtMillis,
	}
	if dao.DestinationChainID != nil {
		tx.DestinationChainID = uint64(*dao.DestinationChainID)
	}
	return tx
}
