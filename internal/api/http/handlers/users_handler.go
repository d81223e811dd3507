package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/internal/service/registration"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// UsersHandler exposes registration and account lookup endpoints.
type UsersHandler struct {
	registrations *registration.Dispatcher
	confirmations *service.ConfirmationService
	accounts      repository.AccountRepository
	authz         service.AuthorizationService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(registrations *registration.Dispatcher, confirmations *service.ConfirmationService, accounts repository.AccountRepository, authz service.AuthorizationService) *UsersHandler {
	return &UsersHandler{
		registrations: registrations,
		confirmations: confirmations,
		accounts:      accounts,
		authz:         authz,
	}
}

// Register handles POST /users/registration.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	reg, err := registrationFromRequest(req)
	if err != nil {
		return err
	}

	account, resp, err := h.registrations.Register(c.UserContext(), reg)
	if err != nil {
		return err
	}

	if _, err := h.confirmations.Issue(c.UserContext(), account); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": resp})
}

// GetByID handles GET /users/:id with post-fetch authorization.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	account, err := h.accounts.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if !h.authz.CanAccess(account.Username, principal.Username(), principal.Role()) {
		return apperrors.NewForbidden("access to this account is not allowed")
	}

	return c.JSON(fiber.Map{"data": dto.UserResponseFromAccount(account)})
}

func registrationFromRequest(req dto.RegistrationRequest) (domain.Registration, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	switch strings.ToLower(req.Role) {
	case "member":
		if req.MembershipID == "" || req.LastFourOfSSN == "" {
			return nil, fiber.NewError(http.StatusBadRequest, "membership_id and last_four_of_ssn required")
		}
		return domain.MemberRegistration{
			Username:      req.Username,
			Password:      req.Password,
			MembershipID:  req.MembershipID,
			LastFourOfSSN: req.LastFourOfSSN,
		}, nil
	case "admin", "administrator":
		if req.FirstName == "" || req.LastName == "" || req.Email == "" {
			return nil, fiber.NewError(http.StatusBadRequest, "first_name, last_name and email required")
		}
		return domain.AdminRegistration{
			Username:  req.Username,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		}, nil
	default:
		return nil, fiber.NewError(http.StatusBadRequest, "unknown registration role")
	}
}
