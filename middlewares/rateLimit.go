package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiters  = make(map[string]*clientLimiter)
	mu        sync.Mutex
	pruneOnce sync.Once
)

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	cl, exists := limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(r, b)}
		limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// pruneLimiters drops entries idle for over five minutes so the map does not
// grow with every client address ever seen.
func pruneLimiters() {
	for range time.Tick(5 * time.Minute) {
		mu.Lock()
		for key, cl := range limiters {
			if time.Since(cl.lastSeen) > 5*time.Minute {
				delete(limiters, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimitMiddleware limits each key to r events/second with burst b. The
// limiter map is process-local; behind multiple replicas the effective limit
// multiplies.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	pruneOnce.Do(func() { go pruneLimiters() })

	return func(c *gin.Context) {
		key := keyFunc(c)
		limiter := getLimiter(key, r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(429, gin.H{
				"success": false,
				"error":   "Too many requests, please try again later.",
			})
			return
		}

		c.Next()
	}
}
