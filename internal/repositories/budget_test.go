package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var budgetRowColumns = []string{"budget_id", "user_id", "name", "amount", "type", "created_at", "updated_at"}

func TestBudgetReadRepository_ListByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBudgetReadRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	t.Run("returns rows in order", func(t *testing.T) {
		id1, id2 := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM budgets WHERE user_id = \$1 ORDER BY created_at, budget_id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(budgetRowColumns).
				AddRow(id1.String(), userID.String(), "Groceries", 100.0, "necessity", now, now).
				AddRow(id2.String(), userID.String(), "Entertainment", 50.0, "luxury", now, now))

		budgets, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, budgets, 2)
		assert.Equal(t, id1, budgets[0].BudgetID)
		assert.Equal(t, models.Necessity, budgets[0].Type)
		assert.Equal(t, "Entertainment", budgets[1].Name)
		assert.Equal(t, 50.0, budgets[1].Amount)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM budgets`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(budgetRowColumns))

		budgets, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, budgets)
		assert.Empty(t, budgets)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBudgetWriteRepository(db, nil)
	ctx := context.Background()
	now := time.Now()

	budget := &models.BudgetDB{
		BudgetID: uuid.New(),
		UserID:   uuid.New(),
		Name:     "Groceries",
		Amount:   100,
		Type:     models.Necessity,
	}

	mock.ExpectQuery(`INSERT INTO budgets (.+) RETURNING`).
		WithArgs(budget.BudgetID, budget.UserID, "Groceries", 100.0, models.Necessity).
		WillReturnRows(sqlmock.NewRows(budgetRowColumns).
			AddRow(budget.BudgetID.String(), budget.UserID.String(), "Groceries", 100.0, "necessity", now, now))

	require.NoError(t, repo.Create(ctx, budget))
	assert.Equal(t, now, budget.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBudgetWriteRepository(db, nil)
	ctx := context.Background()
	now := time.Now()

	budget := &models.BudgetDB{
		BudgetID: uuid.New(),
		UserID:   uuid.New(),
		Name:     "Updated Budget",
		Amount:   150,
		Type:     models.Luxury,
	}

	t.Run("scoped to owner", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE budgets SET (.+) WHERE budget_id = \$4 AND user_id = \$5 RETURNING`).
			WithArgs("Updated Budget", 150.0, models.Luxury, budget.BudgetID, budget.UserID).
			WillReturnRows(sqlmock.NewRows(budgetRowColumns).
				AddRow(budget.BudgetID.String(), budget.UserID.String(), "Updated Budget", 150.0, "luxury", now, now))

		require.NoError(t, repo.Update(ctx, budget))
		assert.Equal(t, "Updated Budget", budget.Name)
		assert.Equal(t, models.Luxury, budget.Type)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE budgets`).
			WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.Update(ctx, budget), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetWriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBudgetWriteRepository(db, nil)
	ctx := context.Background()
	userID, budgetID := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM budgets WHERE budget_id = \$1 AND user_id = \$2`).
		WithArgs(budgetID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, userID, budgetID))

	mock.ExpectExec(`DELETE FROM budgets`).
		WithArgs(budgetID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, userID, budgetID), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
