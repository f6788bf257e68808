package middleware

import (
	"net/http"
	"sync"

	"legalease-platform/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP. Document analysis fans
// out into OCR subprocesses and model calls, so the API refuses to accept
// more work from one client than the pipeline can absorb.
func RateLimitMiddleware(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(rps, burst)
		limiters[ip] = l
		return l
	}

	return func(c *gin.Context) {
		// Health checks are never throttled
		if c.FullPath() == "/health" {
			c.Next()
			return
		}

		if !limiterFor(c.ClientIP()).Allow() {
			utils.RespondWithError(c, http.StatusTooManyRequests,
				"rate_limit_exceeded",
				"Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
