package repository

import (
	"context"

	"github.com/spec-kit/account-service/internal/domain"
)

// MemberRepository defines read access to membership records.
type MemberRepository interface {
	GetByMembershipID(ctx context.Context, membershipID string) (*domain.Member, error)
}

type memberRepository struct {
	db Querier
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(db Querier) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByMembershipID(ctx context.Context, membershipID string) (*domain.Member, error) {
	const query = `
        SELECT id, membership_id, first_name, last_name, email, phone, last_four_of_ssn, created_at
        FROM members WHERE membership_id=$1`

	var member domain.Member
	if err := r.db.QueryRow(ctx, query, membershipID).Scan(
		&member.ID,
		&member.MembershipID,
		&member.FirstName,
		&member.LastName,
		&member.Email,
		&member.Phone,
		&member.LastFourOfSSN,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
