package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS kamisado_records (
	name       TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertRecord = `INSERT INTO kamisado_records (name, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

const selectRecord = `SELECT data FROM kamisado_records WHERE name = $1`

type postgresBackend struct {
	db *sql.DB
}

func openPostgres(ctx context.Context, databaseURL string) (*postgresBackend, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(2)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRecordsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres create table: %w", err)
	}
	return &postgresBackend{db: db}, nil
}

// A single upsert statement replaces the whole record.
func (b *postgresBackend) put(ctx context.Context, name string, data []byte) error {
	_, err := b.db.ExecContext(ctx, upsertRecord, name, data)
	return err
}

func (b *postgresBackend) get(ctx context.Context, name string) ([]byte, bool, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, selectRecord, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *postgresBackend) close() error {
	return b.db.Close()
}

func (b *postgresBackend) String() string {
	return "postgres"
}
