package handlers

//go:generate mockgen -source=summary.go -destination=mock_summary.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
)

// SummaryGetter aggregates a user's budgets against their limit.
type SummaryGetter interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*aggregate.Summary, error)
}

// NewSummaryHandler returns an HTTP handler with totals, per-category sums and the limit state.
// @Summary Budget summary
// @Description Returns total money, totals per category and how the total compares to the spending limit.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} aggregate.Summary "Summary"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/summary [get]
func NewSummaryHandler(svc SummaryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		summary, err := svc.GetSummary(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserDoesNotExist) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to build summary", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
