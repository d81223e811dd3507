package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/account-service/internal/domain"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

const uniqueViolationCode = "23505"

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	ExistsForMember(ctx context.Context, memberID string) (bool, error)
	Enable(ctx context.Context, id string) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	WithTx(tx pgx.Tx) AccountRepository
}

type accountRepository struct {
	db Querier
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db Querier) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) WithTx(tx pgx.Tx) AccountRepository {
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (username, password_hash, role, enabled, first_name, last_name, email, phone, member_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		account.Username,
		account.PasswordHash,
		account.Role,
		account.Enabled,
		account.FirstName,
		account.LastName,
		account.Email,
		account.Phone,
		account.MemberID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return apperrors.NewConflict("account already exists", map[string]any{"username": account.Username})
	}
	return err
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET username=$1, password_hash=$2, role=$3, enabled=$4,
            first_name=$5, last_name=$6, email=$7, phone=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.db.Exec(ctx, query,
		account.Username,
		account.PasswordHash,
		account.Role,
		account.Enabled,
		account.FirstName,
		account.LastName,
		account.Email,
		account.Phone,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, username, password_hash, role, enabled, first_name, last_name, email, phone, member_id, created_at, updated_at
        FROM accounts WHERE id=$1`

	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `
        SELECT id, username, password_hash, role, enabled, first_name, last_name, email, phone, member_id, created_at, updated_at
        FROM accounts WHERE username=$1`

	return r.scanAccount(r.db.QueryRow(ctx, query, username))
}

func (r *accountRepository) ExistsForMember(ctx context.Context, memberID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE member_id=$1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, memberID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Enable flips enabled from false to true. The guard in the WHERE clause
// makes re-enabling an already-enabled account report zero rows.
func (r *accountRepository) Enable(ctx context.Context, id string) error {
	const query = `
        UPDATE accounts SET enabled=TRUE, updated_at=NOW()
        WHERE id=$1 AND enabled=FALSE`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const query = `
        UPDATE accounts SET password_hash=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.Enabled,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.Phone,
		&account.MemberID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
