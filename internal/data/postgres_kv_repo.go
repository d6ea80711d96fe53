package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/data/pgxutil"
	"github.com/pmsadmin/console/internal/ports"
)

var _ ports.KeyValueStore = (*PostgresKVRepo)(nil)

// PostgresKVRepo implements ports.KeyValueStore on the console_kv table.
type PostgresKVRepo struct {
	DB *sql.DB
}

// NewPostgresKVRepo creates a new PostgresKVRepo.
func NewPostgresKVRepo(db *sql.DB) *PostgresKVRepo {
	return &PostgresKVRepo{DB: db}
}

// Get returns the value stored under key.
func (r *PostgresKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var value string
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM console_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select console_kv: %w", apperrors.MapDBError(err))
	}
	return value, true, nil
}

// Set upserts value under key.
func (r *PostgresKVRepo) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	const q = `
		INSERT INTO console_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("upsert console_kv: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Delete removes keys in a single transaction.
func (r *PostgresKVRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			_, execErr := tx.Exec(ctx, `DELETE FROM console_kv WHERE key = ANY($1)`, keys)
			return execErr
		},
	})
	if err != nil {
		return fmt.Errorf("delete console_kv: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Health checks the database connection.
func (r *PostgresKVRepo) Health(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
