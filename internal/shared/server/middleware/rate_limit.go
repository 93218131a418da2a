package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/shared/server/respond"
)

// idleBucketTTL is how long a refilled bucket may sit unused before it is dropped.
const idleBucketTTL = 10 * time.Minute

// RateLimitRule is a token bucket: Rate tokens per second, up to Burst.
// A zero Rate or Burst disables limiting.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

func (r RateLimitRule) enabled() bool {
	return r.Rate > 0 && r.Burst > 0
}

// RateLimitConfig picks a rule per request. GroupFor returning "" or a group
// without a rule leaves the request unlimited.
type RateLimitConfig struct {
	Rules    map[string]RateLimitRule
	GroupFor func(*gin.Context) string
	Limiter  *RateLimiter
}

// RateLimiter holds token buckets keyed by client and group.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	now       func() time.Time
	lastSweep time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter returns a limiter using now as its clock (time.Now when nil).
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets:   make(map[string]*rateBucket),
		now:       now,
		lastSweep: now(),
	}
}

// RateLimit rejects requests over their group's rule with 429 and Retry-After.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		if cfg.GroupFor == nil {
			c.Next()
			return
		}
		group := strings.TrimSpace(cfg.GroupFor(c))
		rule, ok := cfg.Rules[group]
		if group == "" || !ok || !rule.enabled() {
			c.Next()
			return
		}

		wait := limiter.Reserve(c.ClientIP()+"|"+group, rule)
		if wait == 0 {
			c.Next()
			return
		}
		retryAfterMs := wait.Milliseconds()
		if retryAfterMs < 1 {
			retryAfterMs = 1
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many analyses, slow down", gin.H{
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Reserve takes one token for key. It returns 0 when the call may proceed,
// otherwise how long until a token is available.
func (l *RateLimiter) Reserve(key string, rule RateLimitRule) time.Duration {
	if l == nil || !rule.enabled() {
		return 0
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(rule.Burst), b.tokens+elapsed*rule.Rate)
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return 0
	}
	waitMs := math.Ceil((1 - b.tokens) / rule.Rate * 1000)
	return time.Duration(waitMs) * time.Millisecond
}

// sweep drops idle buckets so one-off clients do not accumulate. Caller holds mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleBucketTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.last) >= idleBucketTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// Len reports how many buckets are tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
