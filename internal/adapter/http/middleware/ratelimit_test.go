package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"secure-bank-console/internal/adapter/http/middleware"
	redisStore "secure-bank-console/internal/adapter/storage/redis"
	"secure-bank-console/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(store *redisStore.RateLimitStore, subject string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if subject != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CtxPrincipal, &domain.Principal{Subject: subject, Authenticated: true})
			c.Next()
		})
	}
	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	r.GET("/test", middleware.RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func newStore(t *testing.T) (*miniredis.Miniredis, *redisStore.RateLimitStore) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redisStore.NewRateLimitStore(client)
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	_, store := newStore(t)
	router := setupRateLimitRouter(store, "")

	for i := 0; i < 3; i++ {
		w := hit(router)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	_, store := newStore(t)
	router := setupRateLimitRouter(store, "")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(router).Code)
	}

	w := hit(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysBySubject(t *testing.T) {
	_, store := newStore(t)
	alice := setupRateLimitRouter(store, "alice")
	bob := setupRateLimitRouter(store, "bob")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(alice).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(alice).Code)
	// Same client IP, different subject: separate budget.
	assert.Equal(t, http.StatusOK, hit(bob).Code)
}

func TestRateLimiter_DegradedModeOnRedisFailure(t *testing.T) {
	mr, store := newStore(t)
	router := setupRateLimitRouter(store, "")
	mr.Close()

	w := hit(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	for _, group := range []string{
		middleware.GroupAuth,
		middleware.GroupRead,
		middleware.GroupMutation,
		middleware.GroupWizard,
		middleware.GroupWizardSubmit,
	} {
		rule, ok := rules[group]
		assert.True(t, ok, group)
		assert.Positive(t, rule.Limit, group)
		assert.GreaterOrEqual(t, rule.Window, time.Second, group)
	}
}
