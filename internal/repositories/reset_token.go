package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ResetTokenRepository stores single-use password reset tokens in Redis.
type ResetTokenRepository struct {
	client *redis.Client
	exp    time.Duration // lifetime of a reset token
}

func NewResetTokenRepository(client *redis.Client, expiration time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{
		client: client,
		exp:    expiration,
	}
}

const resetTokenPrefix = "password_reset:"

// resetTokenLogKey replaces the key in query logs.
const resetTokenLogKey = resetTokenPrefix + "***"

func resetTokenKey(token string) string {
	return resetTokenPrefix + token
}

// Save stores token for the user until it expires.
func (r *ResetTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID) error {
	key := resetTokenKey(token)
	err := r.client.Set(ctx, key, userID.String(), r.exp).Err()
	logQuery(ctx, "SET "+resetTokenLogKey, []any{r.exp}, "ok", err)
	return err
}

// Pop consumes the token and returns its user. ErrNotFound is returned for unknown or expired tokens.
func (r *ResetTokenRepository) Pop(ctx context.Context, token string) (uuid.UUID, error) {
	key := resetTokenKey(token)
	val, err := r.client.GetDel(ctx, key).Result()
	logQuery(ctx, "GETDEL "+resetTokenLogKey, nil, val != "", err)

	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed reset token value: %w", err)
	}
	return userID, nil
}

// Delete discards the token.
func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	key := resetTokenKey(token)
	err := r.client.Del(ctx, key).Err()
	logQuery(ctx, "DEL "+resetTokenLogKey, nil, "ok", err)
	return err
}
