package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"
)

func newRateLimitRouter(t *testing.T, formatted string) *gin.Engine {
	rate, err := limiter.NewRateFromFormatted(formatted)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/login", middleware.RateLimit(limiter.New(memory.NewStore(), rate)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hitLogin(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_UnderLimitPasses(t *testing.T) {
	r := newRateLimitRouter(t, "3-M")

	for i := 0; i < 3; i++ {
		w := hitLogin(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_ExceededReturns429(t *testing.T) {
	r := newRateLimitRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, hitLogin(r).Code)
	}

	w := hitLogin(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

// failingStore always errors, standing in for an unreachable backing store.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store unavailable")
}

func (failingStore) Peek(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store unavailable")
}

func (failingStore) Reset(ctx context.Context, key string, rate limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store unavailable")
}

func (failingStore) Increment(ctx context.Context, key string, count int64, rate limiter.Rate) (limiter.Context, error) {
	return limiter.Context{}, errors.New("store unavailable")
}

func TestRateLimit_StoreFaultReturns500(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("5-M")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/login", middleware.RateLimit(limiter.New(failingStore{}, rate)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := hitLogin(r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
