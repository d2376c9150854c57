package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-budget-manager/internal/models"
)

const userColumns = `user_id, username, email, password_hash, spending_limit, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user or nil when it does not exist.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.get(ctx, query, userID)
}

// GetByUsernameOrEmail returns the first user matching the username or the email.
// A nil argument is ignored; nil is returned when nothing matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE ($1::TEXT IS NOT NULL AND username = $1)
		   OR ($2::TEXT IS NOT NULL AND email = $2)
		LIMIT 1`
	return r.get(ctx, query, username, email)
}

func (r *UserReadRepository) get(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)
	logQuery(ctx, query, args, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user. ErrUniqueViolation is returned when the username or email is taken.
func (r *UserWriteRepository) Save(ctx context.Context, userID uuid.UUID, username, passwordHash, email string) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	args := []any{userID, username, email, "***"}

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, username, email, passwordHash)
	logQuery(ctx, query, args, userID, err)

	if isUniqueViolation(err) {
		return ErrUniqueViolation
	}
	return err
}

// UpdatePassword replaces the password hash. ErrNotFound is returned when the user does not exist.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE user_id = $2`
	return r.update(ctx, query, []any{"***", userID}, passwordHash, userID)
}

// SetLimit stores the spending limit. ErrNotFound is returned when the user does not exist.
func (r *UserWriteRepository) SetLimit(ctx context.Context, userID uuid.UUID, limit float64) error {
	query := `UPDATE users SET spending_limit = $1, updated_at = NOW() WHERE user_id = $2`
	return r.update(ctx, query, []any{limit, userID}, limit, userID)
}

// update runs query with args; logArgs is what gets logged in their place.
func (r *UserWriteRepository) update(ctx context.Context, query string, logArgs []any, args ...any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, logArgs, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
