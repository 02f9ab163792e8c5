package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by PostgresStorage.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const (
	selectValueQuery = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueQuery = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
)

// PostgresStorage keeps values in the kv_store table.
type PostgresStorage struct {
	db DBTX
}

func NewPostgresStorage(db DBTX) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (p *PostgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(ctx, selectValueQuery, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *PostgresStorage) Set(ctx context.Context, key, value string) error {
	if _, err := p.db.Exec(ctx, upsertValueQuery, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
