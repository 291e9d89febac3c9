package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimiter is a fixed-window counter kept in process memory. Expired
// buckets are swept at most once per sweepEvery.
type RateLimiter struct {
	mu         sync.Mutex
	now        func() time.Time
	buckets    map[string]*rateBucket
	sweepEvery time.Duration
	nextSweep  time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{now: time.Now, buckets: make(map[string]*rateBucket), sweepEvery: time.Minute}
}

func (r *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweep(now)
	bucket, ok := r.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		r.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

func (r *RateLimiter) sweep(now time.Time) {
	if now.Before(r.nextSweep) {
		return
	}
	for key, bucket := range r.buckets {
		if now.After(bucket.windowEnd) {
			delete(r.buckets, key)
		}
	}
	r.nextSweep = now.Add(r.sweepEvery)
}

// RateLimit throttles write endpoints per actor, or per client IP for
// anonymous callers. A nil limiter or a non-positive limit disables it.
func RateLimit(limiter Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := "ip:" + c.ClientIP()
		if actor := session.FromContext(c.Request.Context()); !actor.Anonymous() {
			key = "actor:" + actor.ID.String()
		}
		if !limiter.Allow(key, limit, window) {
			abort(c, http.StatusTooManyRequests, common.CodeRateLimited, "too many requests")
			return
		}
		c.Next()
	}
}
