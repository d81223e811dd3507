package dto

import "github.com/spec-kit/account-service/internal/domain"

// UserResponseFromAccount maps an account to its response shape. Member
// accounts never expose a phone number.
func UserResponseFromAccount(account *domain.Account) UserResponse {
	resp := UserResponse{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
		Enabled:   account.Enabled,
	}
	if account.Role != domain.RoleMember {
		resp.Phone = account.Phone
	}
	return resp
}
