package handlers

//go:generate mockgen -source=budgets.go -destination=mock_budgets.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
)

// BudgetLister lists the budgets of a user.
type BudgetLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.BudgetDB, error)
}

// BudgetCreator creates a budget for a user.
type BudgetCreator interface {
	Create(ctx context.Context, userID uuid.UUID, name string, amount float64, budgetType string) (*models.BudgetDB, error)
}

// BudgetUpdater overwrites a budget owned by a user.
type BudgetUpdater interface {
	Update(ctx context.Context, userID, budgetID uuid.UUID, name string, amount float64, budgetType string) (*models.BudgetDB, error)
}

// BudgetDeleter deletes a budget owned by a user.
type BudgetDeleter interface {
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
}

// BudgetRequest represents the JSON body for creating or updating a budget
// swagger:model BudgetRequest
type BudgetRequest struct {
	// required: true
	// default: Groceries
	Name string `json:"name"`

	// Amount, may be negative
	// required: true
	// default: 100
	Amount *float64 `json:"amount"`

	// One of necessity, luxury, bills, profit
	// required: true
	// default: necessity
	Type string `json:"type"`
}

// AddBudgetResponse represents a successful budget creation
// swagger:model AddBudgetResponse
type AddBudgetResponse struct {
	// default: Budget added successfully
	Message string          `json:"message"`
	Budget  models.BudgetDB `json:"budget"`
}

func decodeBudgetRequest(r *http.Request) (*BudgetRequest, bool) {
	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		return nil, false
	}
	return &req, true
}

// budgetIDFromRequest parses the {id} path parameter. Malformed ids never name an existing budget.
func budgetIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NewListBudgetsHandler returns an HTTP handler listing the caller's budgets.
// @Summary List budgets
// @Description Returns every budget of the authenticated user in creation order.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.BudgetDB "Budgets"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching budgets"
// @Router /budgets/ [get]
func NewListBudgetsHandler(svc BudgetLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		budgets, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Errorw("failed to list budgets", "err", err)
			writeError(w, http.StatusInternalServerError, "Error fetching budgets")
			return
		}
		if budgets == nil {
			budgets = []models.BudgetDB{}
		}

		writeJSON(w, http.StatusOK, budgets)
	}
}

// NewAddBudgetHandler returns an HTTP handler creating a budget.
// @Summary Add budget
// @Description Creates a budget owned by the authenticated user.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param budgetRequest body handlers.BudgetRequest true "Budget"
// @Success 201 {object} handlers.AddBudgetResponse "Budget added successfully"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 500 {object} handlers.ErrorResponse "Error adding budget"
// @Router /budgets/add [post]
func NewAddBudgetHandler(svc BudgetCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		req, ok := decodeBudgetRequest(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		budget, err := svc.Create(r.Context(), userID, req.Name, *req.Amount, req.Type)
		if err != nil {
			if errors.Is(err, services.ErrInvalidBudget) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to add budget", "err", err)
			writeError(w, http.StatusInternalServerError, "Error adding budget")
			return
		}

		writeJSON(w, http.StatusCreated, AddBudgetResponse{
			Message: "Budget added successfully",
			Budget:  *budget,
		})
	}
}

// NewUpdateBudgetHandler returns an HTTP handler overwriting a budget.
// @Summary Update budget
// @Description Replaces name, amount and type of a budget owned by the authenticated user.
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Param budgetRequest body handlers.BudgetRequest true "Budget"
// @Success 200 {object} models.BudgetDB "Updated budget"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Budget not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/{id} [put]
func NewUpdateBudgetHandler(svc BudgetUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		budgetID, ok := budgetIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Budget not found")
			return
		}

		req, ok := decodeBudgetRequest(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		budget, err := svc.Update(r.Context(), userID, budgetID, req.Name, *req.Amount, req.Type)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidBudget):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrBudgetNotFound):
				writeError(w, http.StatusNotFound, "Budget not found")
			default:
				logger.FromContext(r.Context()).Errorw("failed to update budget", "err", err)
				writeError(w, http.StatusInternalServerError, msgInternalError)
			}
			return
		}

		writeJSON(w, http.StatusOK, budget)
	}
}

// NewDeleteBudgetHandler returns an HTTP handler deleting a budget.
// @Summary Delete budget
// @Description Deletes a budget owned by the authenticated user.
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Success 200 {object} handlers.MessageResponse "Budget deleted successfully"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 404 {object} handlers.ErrorResponse "Budget not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /budgets/{id} [delete]
func NewDeleteBudgetHandler(svc BudgetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		budgetID, ok := budgetIDFromRequest(r)
		if !ok {
			writeError(w, http.StatusNotFound, "Budget not found")
			return
		}

		if err := svc.Delete(r.Context(), userID, budgetID); err != nil {
			if errors.Is(err, services.ErrBudgetNotFound) {
				writeError(w, http.StatusNotFound, "Budget not found")
				return
			}
			logger.FromContext(r.Context()).Errorw("failed to delete budget", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
	}
}
