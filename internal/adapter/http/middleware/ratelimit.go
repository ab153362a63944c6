package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	redisStore "secure-bank-console/internal/adapter/storage/redis"
	"secure-bank-console/pkg/apperror"
	"secure-bank-console/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rate limit groups.
const (
	GroupAuth         = "auth"
	GroupRead         = "read"
	GroupMutation     = "mutation"
	GroupWizard       = "wizard"
	GroupWizardSubmit = "wizard_submit"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group limits. Wizard edits fire on
// every keystroke of the search box, hence the generous wizard budget.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		GroupAuth:         {Limit: 20, Window: time.Minute},
		GroupRead:         {Limit: 120, Window: time.Minute},
		GroupMutation:     {Limit: 30, Window: time.Minute},
		GroupWizard:       {Limit: 300, Window: time.Minute},
		GroupWizardSubmit: {Limit: 10, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Store failures let the request through.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := int64(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Abort(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// extractIdentifier keys authenticated traffic by subject and everything else by client IP.
func extractIdentifier(c *gin.Context) string {
	if p, ok := PrincipalFrom(c); ok && p.Subject != "" {
		return "sub:" + p.Subject
	}
	return "ip:" + c.ClientIP()
}
