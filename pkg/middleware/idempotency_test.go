package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/pkg/logger"
)

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"n":1}`))
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/save-passenger-details", strings.NewReader(`{}`))
		req.Header.Set(DefaultIdempotencyHeader, "k1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	second := do()

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
}

func TestIdempotency_DoesNotCacheFailures(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/order", nil)
		req.Header.Set(DefaultIdempotencyHeader, "k2")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2, calls)
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	h := Idempotency(store, "", logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/order", nil))
	}
	assert.Equal(t, 3, calls)
}

func TestInMemoryIdempotencyStore_Expires(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	defer store.Stop()

	ctx := context.Background()
	store.Set(ctx, "k", &CachedResponse{StatusCode: http.StatusOK})
	time.Sleep(5 * time.Millisecond)

	_, found := store.Get(ctx, "k")
	assert.False(t, found)
}

func TestRedisIdempotencyStore_SetAndGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour, logger.Discard())
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	ctx := context.Background()
	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte(`{"ok":true}`)}

	expected := *resp
	expected.CreatedAt = fixed
	raw, err := json.Marshal(&expected)
	require.NoError(t, err)

	mock.ExpectSet(idempotencyKeyPrefix+"POST /order k", raw, time.Hour).SetVal("OK")
	store.Set(ctx, "POST /order k", resp)

	mock.ExpectGet(idempotencyKeyPrefix + "POST /order k").SetVal(string(raw))
	got, found := store.Get(ctx, "POST /order k")

	require.True(t, found)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(got.Body))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRedisIdempotencyStore_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour, logger.Discard())

	mock.ExpectGet(idempotencyKeyPrefix + "missing").RedisNil()
	_, found := store.Get(context.Background(), "missing")

	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
