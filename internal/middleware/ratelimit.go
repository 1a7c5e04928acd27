package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client in fixed windows and rejects
// once a window's ceiling is reached. State lives only in memory.
type RateLimiter struct {
	max     int
	window  time.Duration
	message string
	now     func() time.Time

	mu        sync.Mutex
	clients   map[string]*fixedWindow
	lastSweep time.Time
}

type fixedWindow struct {
	start time.Time
	count int
}

// NewRateLimiter allows max requests per client within each window.
// message is returned as {"error": message} on rejection.
func NewRateLimiter(max int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		message: message,
		now:     time.Now,
		clients: make(map[string]*fixedWindow),
	}
}

// Allow records a request for key and reports whether it is within the limit.
// When rejected, retryAfter is the time left in the current window.
func (rl *RateLimiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	w, ok := rl.clients[key]
	if !ok || !now.Before(w.start.Add(rl.window)) {
		w = &fixedWindow{start: now}
		rl.clients[key] = w
	}
	if w.count >= rl.max {
		return false, w.start.Add(rl.window).Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows, at most once per window length. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, w := range rl.clients {
		if !now.Before(w.start.Add(rl.window)) {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// Middleware enforces the limit keyed by gin's client IP
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := rl.Allow(c.ClientIP())
		if !allowed {
			c.Header("Retry-After", retryAfterSeconds(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": rl.message})
			return
		}
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
