package postgres

import (
	"context"
	"fmt"

	"job-match-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolTxRunner implements storage.TxRunner on a pgx connection pool.
type PoolTxRunner struct {
	pool *pgxpool.Pool
}

// NewPoolTxRunner creates a new PoolTxRunner.
func NewPoolTxRunner(pool *pgxpool.Pool) *PoolTxRunner {
	return &PoolTxRunner{pool: pool}
}

// Compile-time check to ensure PoolTxRunner implements TxRunner
var _ storage.TxRunner = (*PoolTxRunner)(nil)

// RunInTx begins a transaction, runs fn with it and commits. Any error from
// fn rolls the transaction back and is returned unchanged so callers can keep
// matching their own sentinels.
func (r *PoolTxRunner) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback is a no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
