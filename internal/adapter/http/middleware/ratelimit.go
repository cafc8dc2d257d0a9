package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "custody-broker/internal/adapter/storage/redis"
	"custody-broker/pkg/apperror"
	"custody-broker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a fixed-window limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns per-group limits. Transfers and syncs are
// the expensive paths (each one fans out to the custodian), so they get the
// tightest budgets.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"connections": {Limit: 60, Window: time.Minute},
		"transfers":   {Limit: 30, Window: time.Minute},
		"sync":        {Limit: 10, Window: time.Minute},
		"proxy":       {Limit: 120, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group,
// keyed per client. If the store is unreachable the request is allowed
// through in degraded mode rather than failing closed.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", limiterIdentity(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// limiterIdentity scopes the counter to the authenticated client, falling
// back to the source IP for requests rejected before ClientAuth ran.
func limiterIdentity(c *gin.Context) string {
	if id, exists := c.Get(CtxClientID); exists {
		return fmt.Sprintf("%v", id)
	}
	return c.ClientIP()
}
