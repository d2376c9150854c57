package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/gw-budget-manager/internal/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestLogQuery_Fields(t *testing.T) {
	logs := observeLogs(t)

	logQuery(context.Background(), "SELECT amount\n\t\tFROM budgets WHERE user_id = $1", []any{42}, 3, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "query", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT amount FROM budgets WHERE user_id = $1", fields["query"])
	assert.Contains(t, fields, "args")
	assert.EqualValues(t, 3, fields["result"])
	assert.Contains(t, fields, "error")
}

func TestResetTokenRepository_TokenNotLogged(t *testing.T) {
	logs := observeLogs(t)

	// Nothing listens on port 1, so every command fails fast and is still logged.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { rdb.Close() })

	repo := NewResetTokenRepository(rdb, time.Minute)
	ctx := context.Background()
	const token = "a1b2c3d4e5f6secret"

	assert.Error(t, repo.Save(ctx, token, uuid.New()))
	_, err := repo.Pop(ctx, token)
	assert.Error(t, err)
	assert.Error(t, repo.Delete(ctx, token))

	entries := logs.All()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "query", e.Message)
		assert.NotContains(t, e.Message, token)
		for k, v := range e.ContextMap() {
			assert.NotContains(t, k, token)
			assert.NotContains(t, fmt.Sprint(v), token, k)
		}
		assert.Contains(t, e.ContextMap()["query"], resetTokenLogKey)
	}
}
