package service

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor runs a function inside a single storage transaction.
// Implemented by persistence.Postgres.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
