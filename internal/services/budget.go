package services

//go:generate mockgen -source=budget.go -destination=mock_budget.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
	"github.com/sbilibin2017/gw-budget-manager/internal/repositories"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrBudgetNotFound is returned when no budget with the id is owned by the caller.
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrInvalidBudget is returned for a budget with a missing name, amount or type.
	ErrInvalidBudget = errors.New("invalid budget data")
	// ErrInvalidLimit is returned for limits that are not positive finite numbers.
	ErrInvalidLimit = aggregate.ErrInvalidLimit
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.BudgetDB, error)
}

// BudgetWriter defines owner-scoped write operations for budgets.
type BudgetWriter interface {
	Create(ctx context.Context, budget *models.BudgetDB) error
	Update(ctx context.Context, budget *models.BudgetDB) error
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
}

// LimitWriter stores a user's spending limit.
type LimitWriter interface {
	SetLimit(ctx context.Context, userID uuid.UUID, limit float64) error
}

// SummaryCache caches aggregated summaries per user.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*aggregate.Summary, error)
	Set(ctx context.Context, userID uuid.UUID, summary *aggregate.Summary) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AfterCommitFunc defers fn until the surrounding transaction, if any, has committed.
type AfterCommitFunc func(ctx context.Context, fn func(ctx context.Context))

// BudgetService handles budget CRUD and the spending limit.
type BudgetService struct {
	reader      BudgetReader
	writer      BudgetWriter
	users       UserReader
	limits      LimitWriter
	cache       SummaryCache
	kafkaWriter KafkaWriter
	afterCommit AfterCommitFunc
}

// NewBudgetService creates a new BudgetService. kafkaWriter may be nil.
// A nil afterCommit runs cache invalidation and event publishing right after the write.
func NewBudgetService(
	reader BudgetReader,
	writer BudgetWriter,
	users UserReader,
	limits LimitWriter,
	cache SummaryCache,
	kafkaWriter KafkaWriter,
	afterCommit AfterCommitFunc,
) *BudgetService {
	if afterCommit == nil {
		afterCommit = func(ctx context.Context, fn func(ctx context.Context)) { fn(ctx) }
	}
	return &BudgetService{
		reader:      reader,
		writer:      writer,
		users:       users,
		limits:      limits,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		afterCommit: afterCommit,
	}
}

// List returns the user's budgets in insertion order.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]models.BudgetDB, error) {
	budgets, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list budgets", "user_id", userID, "err", err)
		return nil, err
	}
	return budgets, nil
}

// Create validates and stores a new budget owned by the user.
func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, name string, amount float64, budgetType string) (*models.BudgetDB, error) {
	budget, err := newBudget(userID, uuid.New(), name, amount, budgetType)
	if err != nil {
		return nil, err
	}

	if err := s.writer.Create(ctx, budget); err != nil {
		logger.FromContext(ctx).Errorw("failed to create budget", "user_id", userID, "err", err)
		return nil, err
	}

	s.afterMutation(ctx, userID, models.OperationCreate, budget.BudgetID, budget.Amount, budget.Type)
	return budget, nil
}

// Update overwrites a budget owned by the user.
func (s *BudgetService) Update(ctx context.Context, userID, budgetID uuid.UUID, name string, amount float64, budgetType string) (*models.BudgetDB, error) {
	budget, err := newBudget(userID, budgetID, name, amount, budgetType)
	if err != nil {
		return nil, err
	}

	if err := s.writer.Update(ctx, budget); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBudgetNotFound
		}
		logger.FromContext(ctx).Errorw("failed to update budget", "user_id", userID, "budget_id", budgetID, "err", err)
		return nil, err
	}

	s.afterMutation(ctx, userID, models.OperationUpdate, budget.BudgetID, budget.Amount, budget.Type)
	return budget, nil
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	if err := s.writer.Delete(ctx, userID, budgetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBudgetNotFound
		}
		logger.FromContext(ctx).Errorw("failed to delete budget", "user_id", userID, "budget_id", budgetID, "err", err)
		return err
	}

	s.afterMutation(ctx, userID, models.OperationDelete, budgetID, 0, "")
	return nil
}

// SetLimit stores the user's spending limit rounded to cents and returns the stored value.
func (s *BudgetService) SetLimit(ctx context.Context, userID uuid.UUID, limit float64) (float64, error) {
	if err := aggregate.ValidateLimit(limit); err != nil {
		return 0, ErrInvalidLimit
	}
	limit = aggregate.RoundAmount(limit)

	if err := s.limits.SetLimit(ctx, userID, limit); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrUserDoesNotExist
		}
		logger.FromContext(ctx).Errorw("failed to set limit", "user_id", userID, "err", err)
		return 0, err
	}

	s.afterMutation(ctx, userID, models.OperationLimit, uuid.Nil, limit, "")
	return limit, nil
}

// GetLimit returns the user's spending limit, nil when it was never set.
func (s *BudgetService) GetLimit(ctx context.Context, userID uuid.UUID) (*float64, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}
	return user.Limit, nil
}

func newBudget(userID, budgetID uuid.UUID, name string, amount float64, budgetType string) (*models.BudgetDB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidBudget)
	}
	if utf8.RuneCountInString(name) > maxBudgetNameLen {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidBudget, maxBudgetNameLen)
	}
	if !aggregate.ValidAmount(amount) {
		return nil, fmt.Errorf("%w: amount must be a finite number below 1e18", ErrInvalidBudget)
	}
	t, ok := models.ParseBudgetType(budgetType)
	if !ok {
		return nil, fmt.Errorf("%w: type must be one of necessity, luxury, bills, profit", ErrInvalidBudget)
	}

	return &models.BudgetDB{
		BudgetID: budgetID,
		UserID:   userID,
		Name:     name,
		Amount:   aggregate.RoundAmount(amount),
		Type:     t,
	}, nil
}

// afterMutation drops the cached summary and publishes the change once the write is committed.
func (s *BudgetService) afterMutation(ctx context.Context, userID uuid.UUID, operation string, budgetID uuid.UUID, amount float64, budgetType models.BudgetType) {
	event := models.BudgetEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		Operation: operation,
		Amount:    amount,
		Type:      string(budgetType),
	}
	if budgetID != uuid.Nil {
		event.BudgetID = budgetID.String()
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		if s.cache != nil {
			if err := s.cache.Invalidate(ctx, userID); err != nil {
				logger.FromContext(ctx).Errorw("failed to invalidate summary cache", "user_id", userID, "err", err)
			}
		}
		s.publishEvent(ctx, event)
	})
}

// publishEvent publishes a budget event to Kafka keyed by user.
func (s *BudgetService) publishEvent(ctx context.Context, event models.BudgetEvent) {
	log := logger.FromContext(ctx)

	if s.kafkaWriter == nil {
		log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorw("Failed to marshal budget event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		log.Errorw("Failed to publish budget event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		log.Infow("Budget event published to Kafka", "event_id", event.EventID, "operation", event.Operation)
	}
}
