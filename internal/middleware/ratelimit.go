package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"nutricalc/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the number of per-client buckets kept in memory.
const maxTrackedClients = 10_000

// RateLimiter hands out one token bucket per client. The least recently seen
// clients are forgotten once maxTrackedClients is reached.
type RateLimiter struct {
	name     string
	limit    rate.Limit
	burst    int
	interval time.Duration
	mu       sync.Mutex
	buckets  *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter allows each client n requests per interval.
func NewRateLimiter(name string, n int, interval time.Duration) *RateLimiter {
	if n < 1 {
		n = 1
	}
	// lru.New only fails for a non-positive size.
	buckets, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &RateLimiter{
		name:     name,
		limit:    rate.Every(interval / time.Duration(n)),
		burst:    n,
		interval: interval,
		buckets:  buckets,
	}
}

// Allow reports whether client may make a request now.
func (l *RateLimiter) Allow(client string) bool {
	return l.bucket(client).Allow()
}

func (l *RateLimiter) bucket(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.buckets.Get(client); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	l.buckets.Add(client, limiter)
	return limiter
}

// RateLimit rejects requests with 429 once the client's bucket is empty. The
// client is the authenticated user when known, otherwise the remote IP.
func RateLimit(limiter *RateLimiter, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !limiter.Allow(client) {
				logger.Warn().
					Str("limiter", limiter.name).
					Str("client", client).
					Str("path", r.URL.Path).
					Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(limiter.interval.Seconds())/limiter.burst+1))
				WriteError(w, r, http.StatusTooManyRequests, model.ErrCodeRateLimited, "Rate limit exceeded, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
