// internal/common/database/redis_test.go
package database

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRedis(t *testing.T) (*RedisClient, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewRedisFromClient(db), mock
}

func TestRedisGetSet(t *testing.T) {
	client, mock := newMockRedis(t)
	ctx := context.Background()

	mock.ExpectSet("llm:completion:abc", "cached narrative", time.Minute).SetVal("OK")
	mock.ExpectGet("llm:completion:abc").SetVal("cached narrative")

	require.NoError(t, client.Set(ctx, "llm:completion:abc", "cached narrative", time.Minute))

	val, err := client.Get(ctx, "llm:completion:abc")
	require.NoError(t, err)
	assert.Equal(t, "cached narrative", val)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisGetMiss(t *testing.T) {
	client, mock := newMockRedis(t)

	mock.ExpectGet("missing").RedisNil()

	_, err := client.Get(context.Background(), "missing")

	assert.Equal(t, redis.Nil, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisDel(t *testing.T) {
	client, mock := newMockRedis(t)

	mock.ExpectDel("a", "b").SetVal(2)

	require.NoError(t, client.Del(context.Background(), "a", "b"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
