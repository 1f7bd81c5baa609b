// Package pgstore persists the transaction list in PostgreSQL.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/DINetworks/DI-U2U/pkg/bridge"
	"github.com/DINetworks/DI-U2U/pkg/txstore"
)

// Storage implements txstore.Storage. Save replaces the table contents in a
// single transaction so readers never observe a partial list.
type Storage struct {
	db *bun.DB
}

var _ txstore.Storage = (*Storage)(nil)

func New(db *bun.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Load(ctx context.Context) ([]bridge.Transaction, error) {
	var daos []TransactionDao
	err := s.db.NewSelect().
		Model(&daos).
		Order("position ASC").
		Scan(ctx)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}

	txs := make([]bridge.Transaction, 0, len(daos))
	for i := range daos {
		txs = append(txs, toTransaction(&daos[i]))
	}
	return txs, nil
}

func (s *Storage) Save(ctx context.Context, txs []bridge.Transaction) error {
	daos := make([]*TransactionDao, 0, len(txs))
	for i := range txs {
		daos = append(daos, toTransactionDao(&txs[i], i))
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TransactionDao)(nil)).
			Where("1=1").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		if len(daos) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&daos).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert transactions: %w", err)
		}
		return nil
	})
}
