package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/DINetworks/DI-U2U/pkg/migrations/trackerdb"
	mghelper "github.com/DINetworks/DI-U2U/pkg/pgutil"
)

func TestTrackerDBMigrations_Apply(t *testing.T) {
	mghelper.RequireDocker(t)
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, trackerdb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected migrations to run, but none were applied")
	}

	mghelper.AssertTableExists(t, db, "bridge_transactions")
	mghelper.AssertTableExists(t, db, "bun_migrations")
	mghelper.AssertIndexExists(t, db, "idx_bridge_transactions_status")
	mghelper.AssertIndexExists(t, db, "idx_bridge_transactions_tx_hash")
	mghelper.AssertIndexExists(t, db, "idx_bridge_transactions_command_id")

	group, err = migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
	if !group.IsZero() {
		t.Errorf("expected no pending migrations, got %s", group)
	}
}

func TestTrackerDBMigrations_Rollback(t *testing.T) {
	mghelper.RequireDocker(t)
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, trackerdb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	group, err := migrator.Rollback(ctx)
	if err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("expected a migration group to be rolled back")
	}
	mghelper.AssertTableNotExists(t, db, "bridge_transactions")
}
