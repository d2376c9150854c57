package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/sbilibin2017/gw-budget-manager/internal/services"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryService_GetSummary(t *testing.T) {
	userID := uuid.New()
	limit := 1000.0
	budgets := []models.BudgetDB{
		{Name: "Groceries", Amount: 100, Type: models.Necessity},
		{Name: "Entertainment", Amount: 50, Type: models.Luxury},
		{Name: "Electricity", Amount: 150, Type: models.Bills},
	}

	newService := func(t *testing.T) (*services.SummaryService, *services.MockBudgetReader, *services.MockUserReader, *services.MockSummaryCache) {
		ctrl := gomock.NewController(t)
		budgetReader := services.NewMockBudgetReader(ctrl)
		userReader := services.NewMockUserReader(ctrl)
		cache := services.NewMockSummaryCache(ctrl)
		return services.NewSummaryService(budgetReader, userReader, cache), budgetReader, userReader, cache
	}

	t.Run("computes and caches on miss", func(t *testing.T) {
		svc, budgetReader, userReader, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
		budgetReader.EXPECT().ListByUserID(gomock.Any(), userID).Return(budgets, nil)
		userReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{UserID: userID, Limit: &limit}, nil)
		cache.EXPECT().Set(gomock.Any(), userID, gomock.Any()).Return(nil)

		summary, err := svc.GetSummary(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 300.0, summary.TotalMoney)
		assert.Equal(t, 100.0, summary.CategoryTotals["necessity"])
		assert.Equal(t, 50.0, summary.CategoryTotals["luxury"])
		assert.Equal(t, aggregate.LimitBelow, summary.LimitState)
		assert.True(t, summary.BelowLimitWarning)
		assert.False(t, summary.OverLimitAlert)
	})

	t.Run("returns cached summary", func(t *testing.T) {
		svc, _, _, cache := newService(t)
		cached := &aggregate.Summary{TotalMoney: 42, LimitState: aggregate.LimitUnset}
		cache.EXPECT().Get(gomock.Any(), userID).Return(cached, nil)

		summary, err := svc.GetSummary(context.Background(), userID)
		require.NoError(t, err)
		assert.Same(t, cached, summary)
	})

	t.Run("cache errors are ignored", func(t *testing.T) {
		svc, budgetReader, userReader, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), userID).Return(nil, errors.New("redis down"))
		budgetReader.EXPECT().ListByUserID(gomock.Any(), userID).Return([]models.BudgetDB{}, nil)
		userReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{UserID: userID}, nil)
		cache.EXPECT().Set(gomock.Any(), userID, gomock.Any()).Return(errors.New("redis down"))

		summary, err := svc.GetSummary(context.Background(), userID)
		require.NoError(t, err)
		assert.Zero(t, summary.TotalMoney)
		assert.Equal(t, aggregate.LimitUnset, summary.LimitState)
	})

	t.Run("user vanished", func(t *testing.T) {
		svc, budgetReader, userReader, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
		budgetReader.EXPECT().ListByUserID(gomock.Any(), userID).Return([]models.BudgetDB{}, nil)
		userReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.GetSummary(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserDoesNotExist)
	})

	t.Run("load error", func(t *testing.T) {
		svc, budgetReader, userReader, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), userID).Return(nil, nil)
		budgetReader.EXPECT().ListByUserID(gomock.Any(), userID).Return(nil, errors.New("db error"))
		userReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{UserID: userID}, nil).AnyTimes()

		_, err := svc.GetSummary(context.Background(), userID)
		assert.EqualError(t, err, "db error")
	})
}
