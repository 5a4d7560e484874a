package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager is implemented by repositories that can open store transactions.
// Locks taken inside a transaction are held until Commit or Rollback; that is
// the only coordination primitive the engine uses.
type TxManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
