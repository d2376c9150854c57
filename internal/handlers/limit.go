package handlers

//go:generate mockgen -source=limit.go -destination=mock_limit.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

const msgInvalidLimit = "Invalid limit value"

// LimitSetter stores a user's spending limit and returns the value as stored.
type LimitSetter interface {
	SetLimit(ctx context.Context, userID uuid.UUID, limit float64) (float64, error)
}

// LimitGetter reads a user's spending limit.
type LimitGetter interface {
	GetLimit(ctx context.Context, userID uuid.UUID) (*float64, error)
}

// SetLimitRequest represents the JSON body for setting the spending limit
// swagger:model SetLimitRequest
type SetLimitRequest struct {
	// Positive spending limit
	// required: true
	// default: 500
	Limit *float64 `json:"limit"`
}

// SetLimitResponse represents a successful limit update
// swagger:model SetLimitResponse
type SetLimitResponse struct {
	// default: Limit set successfully
	Message string  `json:"message"`
	Limit   float64 `json:"limit"`
}

// GetLimitResponse holds the spending limit, null when it was never set
// swagger:model GetLimitResponse
type GetLimitResponse struct {
	Limit *float64 `json:"limit"`
}

// NewSetLimitHandler returns an HTTP handler setting the spending limit.
// @Summary Set spending limit
// @Description Stores a positive spending limit for the authenticated user, rounded to cents.
// @Tags limit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param setLimitRequest body handlers.SetLimitRequest true "Limit"
// @Success 200 {object} handlers.SetLimitResponse "Limit set successfully"
// @Failure 400 {object} handlers.ErrorResponse "Invalid limit value"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/setLimit [post]
func NewSetLimitHandler(svc LimitSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req SetLimitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Limit == nil {
			writeError(w, http.StatusBadRequest, msgInvalidLimit)
			return
		}

		stored, err := svc.SetLimit(r.Context(), userID, *req.Limit)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidLimit):
				writeError(w, http.StatusBadRequest, msgInvalidLimit)
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.FromContext(r.Context()).Errorw("failed to set limit", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternalError)
			}
			return
		}

		writeJSON(w, http.StatusOK, SetLimitResponse{
			Message: "Limit set successfully",
			Limit:   stored,
		})
	}
}

// NewGetLimitHandler returns an HTTP handler reading the spending limit.
// @Summary Get spending limit
// @Description Returns the spending limit of the authenticated user, null when unset.
// @Tags limit
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.GetLimitResponse "Limit"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/getLimit [get]
func NewGetLimitHandler(svc LimitGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		limit, err := svc.GetLimit(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to get limit", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		writeJSON(w, http.StatusOK, GetLimitResponse{Limit: limit})
	}
}
