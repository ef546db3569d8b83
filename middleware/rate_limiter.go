// middleware/rate_limiter.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles clients per IP and route. A client that exceeds its
// limit is blocked for blockDuration. Limiters idle for longer than idleTTL
// are dropped by the cleanup loop.
type RateLimiter struct {
	ips            map[string]*visitor
	blockedIPs     map[string]time.Time
	mu             *sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	idleTTL        time.Duration
	endpointLimits map[string]endpointLimit
	skipPrefixes   []string
	now            func() time.Time
}

// NewRateLimiter starts a limiter whose cleanup loop runs until ctx is done
func NewRateLimiter(ctx context.Context) *RateLimiter {
	limiter := &RateLimiter{
		ips:           make(map[string]*visitor),
		blockedIPs:    make(map[string]time.Time),
		mu:            &sync.RWMutex{},
		defaultLimit:  rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:  20,
		blockDuration: 5 * time.Minute,
		idleTTL:       10 * time.Minute,
		endpointLimits: map[string]endpointLimit{
			// Passenger endpoints take guessable input; keep them slow
			endpointKey(http.MethodGet, "/api/qr/:token"):        {limit: rate.Every(time.Second), burst: 10},
			endpointKey(http.MethodPost, "/api/qr/:token"):       {limit: rate.Every(time.Second), burst: 10},
			endpointKey(http.MethodPost, "/api/shipping/:token"): {limit: rate.Every(2 * time.Second), burst: 5},
			endpointKey(http.MethodPost, "/api/auth/login"):      {limit: rate.Every(2 * time.Second), burst: 5},
			endpointKey(http.MethodPost, "/api/lost-reports"):    {limit: rate.Every(2 * time.Second), burst: 5},
		},
		skipPrefixes: []string{"/uploads/", "/metrics", "/health"},
		now:          time.Now,
	}

	go limiter.cleanupLoop(ctx, time.Minute)

	return limiter
}

// SetEndpointLimit overrides the limit for one method on a route pattern
// such as "/api/qr/:token"
func (r *RateLimiter) SetEndpointLimit(method, path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[endpointKey(method, path)] = endpointLimit{limit: limit, burst: burst}
}

func endpointKey(method, path string) string {
	return method + " " + path
}

func (r *RateLimiter) cleanupLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.cleanup()
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			r.forget(ip)
		}
	}
	for key, v := range r.ips {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.ips, key)
		}
	}
}

// forget drops the block and every route limiter of ip. Caller holds r.mu.
func (r *RateLimiter) forget(ip string) {
	delete(r.blockedIPs, ip)
	for k := range r.ips {
		if strings.HasPrefix(k, ip+" ") {
			delete(r.ips, k)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, prefix := range r.skipPrefixes {
				if strings.HasPrefix(c.Request().URL.Path, prefix) {
					return next(c)
				}
			}

			ip := c.RealIP()
			endpoint := endpointKey(c.Request().Method, c.Path())
			key := ip + " " + endpoint

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if r.now().Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, blockUntil)
				}
				r.forget(ip)
			}

			limit, burst := r.defaultLimit, r.defaultBurst
			if el, ok := r.endpointLimits[endpoint]; ok {
				limit, burst = el.limit, el.burst
			}
			v, ok := r.ips[key]
			if !ok {
				v = &visitor{limiter: rate.NewLimiter(limit, burst)}
				r.ips[key] = v
			}
			v.lastSeen = r.now()

			if !v.limiter.AllowN(v.lastSeen, 1) {
				blockUntil := r.now().Add(r.blockDuration)
				r.blockedIPs[ip] = blockUntil
				r.mu.Unlock()
				return tooManyRequests(c, blockUntil)
			}
			r.mu.Unlock()

			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, retryAfter time.Time) error {
	return c.JSON(http.StatusTooManyRequests, map[string]string{
		"error":      "Too many requests",
		"retryAfter": retryAfter.UTC().Format(time.RFC3339),
	})
}
