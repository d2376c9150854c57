package handlers

//go:generate mockgen -source=password.go -destination=mock_password.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

// PasswordRecoverer starts password recovery for an email address.
type PasswordRecoverer interface {
	RecoverPassword(ctx context.Context, email string) error
}

// PasswordResetter completes password recovery with a reset token.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// RecoverPasswordRequest represents the JSON body for password recovery
// swagger:model RecoverPasswordRequest
type RecoverPasswordRequest struct {
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// ResetPasswordRequest represents the JSON body for a password reset
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token received by email
	// required: true
	Token string `json:"token"`

	// New password, at least 6 characters
	// required: true
	Password string `json:"password"`
}

// NewRecoverPasswordHandler returns an HTTP handler that mails a password reset token.
// @Summary Recover password
// @Description Sends a single-use password reset token to the email address of an existing user.
// @Tags auth
// @Accept json
// @Produce json
// @Param recoverPasswordRequest body handlers.RecoverPasswordRequest true "Email of the account"
// @Success 200 {object} handlers.MessageResponse "Recovery email sent successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "Email not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to send recovery email"
// @Router /budgets/recover-password [post]
func NewRecoverPasswordHandler(svc PasswordRecoverer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecoverPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := svc.RecoverPassword(r.Context(), req.Email); err != nil {
			if errors.Is(err, services.ErrEmailNotFound) {
				writeError(w, http.StatusNotFound, "Email not found")
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to recover password", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to send recovery email")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Recovery email sent successfully"})
	}
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password using a reset token.
// @Summary Reset password
// @Description Consumes a reset token and replaces the password of its user. A token can be used once.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} handlers.MessageResponse "Password reset successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired reset token / invalid password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidResetToken),
				errors.Is(err, services.ErrInvalidPassword),
				errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.FromContext(r.Context()).Errorw("failed to reset password", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternalError)
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password reset successfully"})
	}
}
