package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token bucket per client ip. Buckets idle for
// longer than expiry are dropped on the next sweep.
type IPRateLimiter struct {
	ips    map[string]*rateLimiterWithTime
	mu     sync.Mutex
	rate   rate.Limit
	burst  int
	expiry time.Duration
	now    func() time.Time
}

type rateLimiterWithTime struct {
	limiter   *rate.Limiter
	lastUsage time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*rateLimiterWithTime),
		rate:   r,
		burst:  b,
		expiry: time.Hour,
		now:    time.Now,
	}
}

func (i *IPRateLimiter) sweep() {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	for ip, wrapper := range i.ips {
		if now.Sub(wrapper.lastUsage) > i.expiry {
			delete(i.ips, ip)
		}
	}
}

func (i *IPRateLimiter) sweepEvery(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			i.sweep()
		case <-stop:
			return
		}
	}
}

func (i *IPRateLimiter) Allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	wrapper, exists := i.ips[ip]
	if !exists {
		wrapper = &rateLimiterWithTime{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.ips[ip] = wrapper
	}
	wrapper.lastUsage = i.now()

	return wrapper.limiter.Allow()
}

// RateLimit sweeps idle buckets in the background until stop is closed
func RateLimit(stop <-chan struct{}, rps float64, burst int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(rate.Limit(rps), burst)
	go limiter.sweepEvery(time.Minute, stop)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse[any]{
				Success: false,
				Status:  http.StatusTooManyRequests,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}
