package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
	"golang.org/x/sync/errgroup"
)

// SummaryService aggregates a user's budgets against their limit.
type SummaryService struct {
	budgets BudgetReader
	users   UserReader
	cache   SummaryCache
}

// NewSummaryService creates a new SummaryService. cache may be nil.
func NewSummaryService(budgets BudgetReader, users UserReader, cache SummaryCache) *SummaryService {
	return &SummaryService{
		budgets: budgets,
		users:   users,
		cache:   cache,
	}
}

// GetSummary returns the cached summary or computes it from the stored budgets and limit.
// Cache failures are logged and otherwise ignored.
func (s *SummaryService) GetSummary(ctx context.Context, userID uuid.UUID) (*aggregate.Summary, error) {
	log := logger.FromContext(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			log.Errorw("failed to read summary cache", "user_id", userID, "err", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	var (
		budgets []models.BudgetDB
		user    *models.UserDB
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorw("failed to load summary data", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}

	entries := make([]aggregate.Entry, 0, len(budgets))
	for _, b := range budgets {
		entries = append(entries, aggregate.Entry{Type: string(b.Type), Amount: b.Amount})
	}
	summary := aggregate.Summarize(entries, user.Limit)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, &summary); err != nil {
			log.Errorw("failed to write summary cache", "user_id", userID, "err", err)
		}
	}

	return &summary, nil
}
