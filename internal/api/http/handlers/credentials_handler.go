package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
)

// CredentialsHandler exposes confirmation and password reset endpoints.
type CredentialsHandler struct {
	confirmations *service.ConfirmationService
	resets        *service.PasswordResetService
	notifications *service.NotificationService
}

// NewCredentialsHandler constructs handler.
func NewCredentialsHandler(confirmations *service.ConfirmationService, resets *service.PasswordResetService, notifications *service.NotificationService) *CredentialsHandler {
	return &CredentialsHandler{
		confirmations: confirmations,
		resets:        resets,
		notifications: notifications,
	}
}

// Confirm handles POST /users/confirmation.
func (h *CredentialsHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}

	result, err := h.confirmations.Confirm(c.UserContext(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.ConfirmationResponse{
		Username:    result.Username,
		ConfirmedAt: result.ConfirmedAt,
		Enabled:     result.Enabled,
	}})
}

// RequestOTP handles POST /users/password-reset-otp.
func (h *CredentialsHandler) RequestOTP(c *fiber.Ctx) error {
	var req dto.PasswordResetOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" {
		return fiber.NewError(http.StatusBadRequest, "username required")
	}

	method := domain.ContactMethod(req.ContactMethod)
	hook := func(ctx context.Context, code string, account *domain.Account) error {
		return h.notifications.DeliverPasscode(ctx, account, code, method)
	}

	if err := h.resets.RequestReset(c.UserContext(), req.Username, hook); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "passcode_sent"}})
}

// AuthenticateOTP handles POST /users/otp-authentication.
func (h *CredentialsHandler) AuthenticateOTP(c *fiber.Ctx) error {
	var req dto.OTPAuthenticationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.OTP == "" {
		return fiber.NewError(http.StatusBadRequest, "username and otp required")
	}

	if err := h.resets.VerifyCode(c.UserContext(), req.Username, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "passcode_valid"}})
}

// ResetPassword handles PUT /users/password-reset.
func (h *CredentialsHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.OTP == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "username, otp and new_password required")
	}

	if err := h.resets.ResetPassword(c.UserContext(), req.Username, req.OTP, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}
