package middleware

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/metrics"
)

// IPRateLimiter keeps one token bucket per client IP. A bucket unused for
// idleTTL is dropped; the IP starts over with a full bucket.
type IPRateLimiter struct {
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	metrics *metrics.MetricsRegistry

	mu       sync.Mutex
	limiters *cache.Cache
}

func NewIPRateLimiter(rps float64, burst int, idleTTL time.Duration, metricsReg *metrics.MetricsRegistry) *IPRateLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &IPRateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
		metrics:  metricsReg,
		limiters: cache.New(idleTTL, idleTTL),
	}
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiterFor(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
	}
	// Re-set on every request so the entry expires only after idleTTL of silence.
	l.limiters.Set(ip, limiter, l.idleTTL)
	return limiter
}

func (l *IPRateLimiter) limiterFor(ip string) (*rate.Limiter, bool) {
	v, found := l.limiters.Get(ip)
	if !found {
		return nil, false
	}
	limiter, ok := v.(*rate.Limiter)
	return limiter, ok
}

// Tracked reports how many client IPs currently hold a bucket.
func (l *IPRateLimiter) Tracked() int {
	l.limiters.DeleteExpired()
	return l.limiters.ItemCount()
}

// Middleware rejects requests over the limit with 429. A non-positive rate
// disables limiting.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.getLimiter(ip).Allow() {
			if l.metrics != nil {
				l.metrics.RateLimitedTotal.Inc()
			}
			common.RespondError(w, time.Now(), errors.New("Too many requests"), "", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
