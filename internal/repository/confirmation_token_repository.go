package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/domain"
)

// ConfirmationTokenRepository manages confirmation token persistence.
type ConfirmationTokenRepository interface {
	Create(ctx context.Context, token *domain.ConfirmationToken) error
	GetByID(ctx context.Context, id string) (*domain.ConfirmationToken, error)
	Delete(ctx context.Context, id string) (bool, error)
	WithTx(tx pgx.Tx) ConfirmationTokenRepository
}

type confirmationTokenRepository struct {
	db Querier
}

// NewConfirmationTokenRepository returns a Postgres-backed implementation.
func NewConfirmationTokenRepository(db Querier) ConfirmationTokenRepository {
	return &confirmationTokenRepository{db: db}
}

func (r *confirmationTokenRepository) WithTx(tx pgx.Tx) ConfirmationTokenRepository {
	return &confirmationTokenRepository{db: tx}
}

func (r *confirmationTokenRepository) Create(ctx context.Context, token *domain.ConfirmationToken) error {
	const query = `
        INSERT INTO confirmation_tokens (id, account_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.AccountID,
		token.CreatedAt,
		token.ExpiresAt,
	)
	return err
}

func (r *confirmationTokenRepository) GetByID(ctx context.Context, id string) (*domain.ConfirmationToken, error) {
	const query = `
        SELECT id, account_id, created_at, expires_at
        FROM confirmation_tokens WHERE id=$1`

	var token domain.ConfirmationToken
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&token.ID,
		&token.AccountID,
		&token.CreatedAt,
		&token.ExpiresAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

// Delete removes the token, reporting whether a row was actually deleted.
// Under two concurrent confirmations exactly one caller sees true.
func (r *confirmationTokenRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM confirmation_tokens WHERE id=$1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
