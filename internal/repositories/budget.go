package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
)

const budgetColumns = `budget_id, user_id, name, amount, type, created_at, updated_at`

// BudgetReadRepository handles budget read operations
type BudgetReadRepository struct {
	db *sqlx.DB
}

func NewBudgetReadRepository(db *sqlx.DB) *BudgetReadRepository {
	return &BudgetReadRepository{db: db}
}

// ListByUserID returns every budget owned by the user in insertion order.
func (r *BudgetReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.BudgetDB, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at, budget_id
	`

	budgets := []models.BudgetDB{}
	err := r.db.SelectContext(ctx, &budgets, query, userID)
	logQuery(ctx, query, []any{userID}, len(budgets), err)

	if err != nil {
		return nil, err
	}
	return budgets, nil
}

// BudgetWriteRepository handles budget write operations. Every mutation is scoped to the owner.
type BudgetWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewBudgetWriteRepository(db *sqlx.DB, txGetter TxGetter) *BudgetWriteRepository {
	return &BudgetWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the budget and fills in its timestamps.
func (r *BudgetWriteRepository) Create(ctx context.Context, budget *models.BudgetDB) error {
	query := `
		INSERT INTO budgets (budget_id, user_id, name, amount, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + budgetColumns
	args := []any{budget.BudgetID, budget.UserID, budget.Name, budget.Amount, budget.Type}

	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), budget, query, args...)
	logQuery(ctx, query, args, budget.BudgetID, err)

	return err
}

// Update overwrites name, amount and type of the budget with the same id and owner.
// ErrNotFound is returned when no such budget exists.
func (r *BudgetWriteRepository) Update(ctx context.Context, budget *models.BudgetDB) error {
	query := `
		UPDATE budgets
		SET name = $1, amount = $2, type = $3, updated_at = NOW()
		WHERE budget_id = $4 AND user_id = $5
		RETURNING ` + budgetColumns
	args := []any{budget.Name, budget.Amount, budget.Type, budget.BudgetID, budget.UserID}

	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), budget, query, args...)
	logQuery(ctx, query, args, budget.UpdatedAt, err)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes the budget with the given id and owner.
// ErrNotFound is returned when no such budget exists.
func (r *BudgetWriteRepository) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	query := `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2`
	args := []any{budgetID, userID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
