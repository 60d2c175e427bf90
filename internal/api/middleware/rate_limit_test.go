package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestIPRateLimiterSweep(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	now = now.Add(30 * time.Minute)
	limiter.Allow("10.0.0.2")

	now = now.Add(45 * time.Minute)
	limiter.sweep()

	_, first := limiter.ips["10.0.0.1"]
	_, second := limiter.ips["10.0.0.2"]
	assert.False(t, first)
	assert.True(t, second)
}

func TestSweepEveryStops(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		limiter.sweepEvery(time.Millisecond, stop)
		close(done)
	}()

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	stop := make(chan struct{})
	defer close(stop)
	router.Use(RateLimit(stop, 0.001, 1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrInvalidInput, http.StatusBadRequest},
		{models.ErrInvalidAmount, http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrAlreadyClaimed, http.StatusConflict},
		{models.ErrNotEligible, http.StatusForbidden},
		{models.ErrInsufficientBalance, http.StatusPaymentRequired},
		{models.ErrItemUnavailable, http.StatusGone},
		{models.ErrWouldGoNegative, http.StatusUnprocessableEntity},
		{fmt.Errorf("claim: %w", models.ErrNotFound), http.StatusNotFound},
		{models.NewStoreError("get", errors.New("timeout")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
