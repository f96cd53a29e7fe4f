package api

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/auth"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
)

// requireAuth validates the bearer token and attaches the identity to the
// request context.
func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := h.tokens.FromRequest(r)
		if err != nil {
			h.writeError(w, apperr.Auth("Access denied. No valid token provided."))
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// requireManager rejects authenticated users whose role has no admin API
// access. Must run after requireAuth.
func (h *Handlers) requireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		if !ok {
			h.writeError(w, apperr.Auth("Access denied. Please log in."))
			return
		}
		if !id.CanManage() {
			h.writeError(w, apperr.Forbidden("Access denied. Insufficient permissions."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimiter throttles requests per client IP with a token bucket each.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	log      *zap.Logger
}

// NewRateLimiter allows `requests` per `window` per client, with a burst of
// the full window quota.
func NewRateLimiter(requests int, window time.Duration, log *zap.Logger) *RateLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
		log:      log,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	// Bounded memory: reset wholesale rather than tracking per-entry age.
	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Handler is the chi middleware enforcing the limit.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(r.RemoteAddr).Allow() {
			rl.log.Warn("rate limit exceeded",
				zap.String("ip", r.RemoteAddr),
				zap.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "900")
			httputil.Fail(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
