package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-interview-backend/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(cfg middleware.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/authentication/public/login", middleware.RateLimit(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hit(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/authentication/public/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Redis is never initialized in tests, so these cover the in-memory path.
func TestRateLimitWithoutRedis(t *testing.T) {
	t.Run("Should serve strict endpoints through the memory fallback", func(t *testing.T) {
		cfg := middleware.AuthRateLimitConfig(10, 60)
		cfg.KeyPrefix = "test:auth-serve:"
		router := newRateLimitedRouter(cfg)

		w := hit(router)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should enforce the window limit in memory", func(t *testing.T) {
		cfg := middleware.AuthRateLimitConfig(3, 60)
		cfg.KeyPrefix = "test:auth-limit:"
		router := newRateLimitedRouter(cfg)

		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hit(router).Code)
		}

		w := hit(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Should reset the window after it elapses", func(t *testing.T) {
		cfg := middleware.RateLimitConfig{
			Limit:      1,
			Window:     50 * time.Millisecond,
			KeyPrefix:  "test:auth-reset:",
			FailClosed: true,
		}
		router := newRateLimitedRouter(cfg)

		assert.Equal(t, http.StatusOK, hit(router).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router).Code)

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, http.StatusOK, hit(router).Code)
	})
}
