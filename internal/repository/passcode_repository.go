package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/domain"
)

// PasscodeRepository manages one-time passcode persistence. The table keys
// on account id, so at most one passcode is active per account.
type PasscodeRepository interface {
	Upsert(ctx context.Context, passcode *domain.OneTimePasscode) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.OneTimePasscode, error)
	Delete(ctx context.Context, accountID string) (bool, error)
	WithTx(tx pgx.Tx) PasscodeRepository
}

type passcodeRepository struct {
	db Querier
}

// NewPasscodeRepository returns a Postgres-backed implementation.
func NewPasscodeRepository(db Querier) PasscodeRepository {
	return &passcodeRepository{db: db}
}

func (r *passcodeRepository) WithTx(tx pgx.Tx) PasscodeRepository {
	return &passcodeRepository{db: tx}
}

// Upsert stores a passcode, replacing any prior active one for the account.
func (r *passcodeRepository) Upsert(ctx context.Context, passcode *domain.OneTimePasscode) error {
	const query = `
        INSERT INTO one_time_passcodes (account_id, code_hash, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (account_id) DO UPDATE SET code_hash=EXCLUDED.code_hash, created_at=EXCLUDED.created_at`

	_, err := r.db.Exec(ctx, query,
		passcode.AccountID,
		passcode.CodeHash,
		passcode.CreatedAt,
	)
	return err
}

func (r *passcodeRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.OneTimePasscode, error) {
	const query = `
        SELECT account_id, code_hash, created_at
        FROM one_time_passcodes WHERE account_id=$1`

	var passcode domain.OneTimePasscode
	if err := r.db.QueryRow(ctx, query, accountID).Scan(
		&passcode.AccountID,
		&passcode.CodeHash,
		&passcode.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &passcode, nil
}

// Delete consumes the passcode, reporting whether a row was deleted.
func (r *passcodeRepository) Delete(ctx context.Context, accountID string) (bool, error) {
	const query = `DELETE FROM one_time_passcodes WHERE account_id=$1`

	cmd, err := r.db.Exec(ctx, query, accountID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
