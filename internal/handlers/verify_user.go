package handlers

//go:generate mockgen -source=verify_user.go -destination=mock_verify_user.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

// UserVerifier checks that an authenticated user still exists.
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID uuid.UUID) error
}

// NewVerifyUserHandler returns an HTTP handler that confirms the token owner still exists.
// @Summary Verify user
// @Description Confirms that the user behind the token still exists.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "User exists"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/verify-user [get]
func NewVerifyUserHandler(svc UserVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := svc.VerifyUser(r.Context(), userID); err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to verify user", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "User exists"})
	}
}
