// Package storage opens the client's local SQLite database, applies schema
// migrations and wires up the repositories that own durable state.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aditwb/storysync/internal/client/repositories/pending"
	"github.com/aditwb/storysync/internal/client/repositories/stories"
	"github.com/aditwb/storysync/internal/client/storage/migrations"
	"github.com/aditwb/storysync/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the durable tables of the client store.
type Repositories struct {
	Stories stories.Repository
	Pending pending.Repository
	DB      *sql.DB
}

// RunMigrations applies all embedded schema migrations. Already-applied
// versions are skipped, so a version bump only creates missing tables.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, migrates it and
// returns the repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	repos := &Repositories{
		Stories: stories.NewSQLiteRepository(db),
		Pending: pending.NewSQLiteRepository(db),
		DB:      db,
	}
	return repos, nil
}

// ClearAll empties both the saved-story and the pending-story tables in a
// single transaction. Irreversible; the caller is responsible for confirming
// the action with the user first.
func (r *Repositories) ClearAll(ctx context.Context) error {
	err := dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stories`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM pending_stories`)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
