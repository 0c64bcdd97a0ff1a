package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/marcellhenrique/LibrarySystem/internal/shared/logger"
	"github.com/marcellhenrique/LibrarySystem/internal/shared/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimited is the 429 body
var RateLimited = struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}{
	Status:  http.StatusTooManyRequests,
	Code:    "RATE-001",
	Message: "Too many attempts. Try again later.",
}

// RateLimit throttles requests per client IP and route
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:ip:%s:%s", c.ClientIP(), c.FullPath())
		res := limiter.Allow(c.Request.Context(), key)

		limit := limiter.Limit()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))

		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded", "key", key, "retry_after", retryAfter)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(RateLimited.Status, RateLimited)
			return
		}

		c.Next()
	}
}
