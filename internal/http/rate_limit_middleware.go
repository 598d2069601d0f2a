package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// loginRateLimiterStore holds per-IP token buckets for the login endpoint.
// Stale buckets are swept inline on access so IP churn cannot grow the map
// without bound and no background goroutine outlives the server.
type loginRateLimiterStore struct {
	mu         sync.Mutex
	limiters   map[string]*loginRateLimiterEntry
	rps        float64
	burst      int
	staleAfter time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

type loginRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimitMiddleware enforces per-IP rate limiting on the login
// endpoint to slow down credential stuffing. Returns 429 with a
// Retry-After header when the bucket is empty.
func LoginRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &loginRateLimiterStore{
		limiters:   make(map[string]*loginRateLimiterEntry),
		rps:        rps,
		burst:      burst,
		staleAfter: 5 * time.Minute,
		now:        time.Now,
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("login rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter),
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many login attempts from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (s *loginRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepStaleLocked(now)

	if entry, ok := s.limiters[ip]; ok {
		entry.lastAccess = now
		return entry.limiter
	}

	entry := &loginRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	s.limiters[ip] = entry
	return entry.limiter
}

// sweepStaleLocked evicts buckets idle for longer than staleAfter. It runs
// at most once per staleAfter interval; callers must hold the lock.
func (s *loginRateLimiterStore) sweepStaleLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.staleAfter {
		return
	}
	s.lastSweep = now

	cutoff := now.Add(-s.staleAfter)
	for ip, entry := range s.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(s.limiters, ip)
		}
	}
}
