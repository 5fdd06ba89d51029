package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

func TestRedisCache_GetJSON(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewRedisCache(rdb)
	ctx := context.Background()

	want := payload{Month: "2025-03", Total: 4700}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet("summary:test").SetVal(string(raw))

	var got payload
	require.NoError(t, svc.GetJSON(ctx, "summary:test", &got))
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetJSON_Miss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewRedisCache(rdb)

	mock.ExpectGet("summary:absent").RedisNil()

	var got payload
	err := svc.GetJSON(context.Background(), "summary:absent", &got)
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SetJSON(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewRedisCache(rdb)

	value := payload{Month: "2025-03", Total: 4700}
	raw, err := json.Marshal(value)
	require.NoError(t, err)

	mock.ExpectSet("summary:test", raw, 24*time.Hour).SetVal("OK")

	require.NoError(t, svc.SetJSON(context.Background(), "summary:test", value, 24*time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Delete(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewRedisCache(rdb)

	mock.ExpectDel("summary:test").SetVal(1)

	require.NoError(t, svc.Delete(context.Background(), "summary:test"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
