package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/upload", Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"handled": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CachedResultShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/upload::key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"upload_id":"u-1"}`)

	handled := false
	r := gin.New()
	r.POST("/upload", Idempotency(rdb), func(c *gin.Context) {
		handled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, handled)
	assert.Contains(t, w.Body.String(), `"u-1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_AcquiresLockAndContinues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/upload::key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	var gotCacheKey, gotLockKey string
	r := gin.New()
	r.POST("/upload", Idempotency(rdb), func(c *gin.Context) {
		gotCacheKey = c.GetString("idempotency_cache_key")
		gotLockKey = c.GetString("idempotency_lock_key")
		c.JSON(http.StatusCreated, gin.H{"handled": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, cacheKey, gotCacheKey)
	assert.Equal(t, cacheKey+":lock", gotLockKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightRequestRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/upload::key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	r.POST("/upload", Idempotency(rdb), func(c *gin.Context) {
		t.Fatal("handler should not run while lock is held")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}
