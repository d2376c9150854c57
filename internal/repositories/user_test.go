package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var userRowColumns = []string{"user_id", "username", "email", "password_hash", "spending_limit", "created_at", "updated_at"}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	t.Run("found with limit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(userID.String(), "alice", "alice@example.com", "hash", 500.0, now, now))

		user, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.Limit)
		assert.Equal(t, 500.0, *user.Limit)
	})

	t.Run("found without limit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(userID.String(), "alice", "alice@example.com", "hash", nil, now, now))

		user, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Nil(t, user.Limit)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByID(ctx, userID)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnError(errors.New("connection reset"))

		user, err := repo.GetByID(ctx, userID)
		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()
	email := "bob@example.com"

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE (.+) OR (.+) LIMIT 1`).
		WithArgs(nil, email).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userID.String(), "bob", email, "hash", nil, now, now))

	user, err := repo.GetByUsernameOrEmail(ctx, nil, &email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(userID, "alice", "alice@example.com", "hash").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(ctx, userID, "alice", "hash", "alice@example.com"))
	})

	t.Run("duplicate", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(userID, "alice", "alice@example.com", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		err := repo.Save(ctx, userID, "alice", "hash", "alice@example.com")
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_SetLimitAndPassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET spending_limit = \$1`).
		WithArgs(750.0, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetLimit(ctx, userID, 750))

	mock.ExpectExec(`UPDATE users SET spending_limit = \$1`).
		WithArgs(750.0, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetLimit(ctx, userID, 750), ErrNotFound)

	mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
		WithArgs("newhash", userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdatePassword(ctx, userID, "newhash"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UsesContextTx(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewUserWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })

	mock.ExpectExec(`UPDATE users SET spending_limit = \$1`).
		WithArgs(100.0, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.SetLimit(ctx, userID, 100))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
