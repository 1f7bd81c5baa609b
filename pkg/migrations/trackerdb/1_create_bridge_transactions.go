package trackerdb

import (
	"context"
	"log"

	mghelper "github.com/DINetworks/DI-U2U/pkg/pgutil/migrations"
	"github.com/DINetworks/DI-U2U/pkg/txstore/pgstore"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating bridge_transactions table...")
		if err := mghelper.CreateSchema(ctx, db, &pgstore.TransactionDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &pgstore.TransactionDao{}, "status", "tx_hash", "command_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping bridge_transactions table...")
		return mghelper.DropTables(ctx, db, &pgstore.TransactionDao{})
	})
}
