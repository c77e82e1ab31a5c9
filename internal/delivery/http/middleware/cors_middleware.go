package middleware

import (
	"go-interview-backend/config"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware adds CORS headers for the browser frontend. Cookie-based
// sessions require credentials, so the allowed origin is always echoed
// explicitly, never wildcarded.
//
// Development allows localhost origins; production only the configured
// frontend and the known app domains.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	prodOrigins := map[string]bool{
		cfg.FrontendURL:                     true,
		"https://app.shortcomponents4u.com": true,
	}
	devOrigins := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:4200": true,
		"http://localhost:8000": true,
		"http://127.0.0.1:3000": true,
		"http://127.0.0.1:4200": true,
	}

	isProduction := cfg.IsProduction()

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		var isAllowed bool
		if prodOrigins[origin] {
			isAllowed = true
		}
		if !isProduction && devOrigins[origin] {
			isAllowed = true
		}
		// Same-origin and non-browser requests carry no Origin header
		if origin == "" {
			isAllowed = true
		}

		if isAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Cookie, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			c.Header("Access-Control-Max-Age", "86400") // 24 hours
		}
		// If not allowed, no CORS headers are sent - the browser blocks it

		c.Header("Vary", "Origin")

		if c.Request.Method == "OPTIONS" {
			if isAllowed {
				c.AbortWithStatus(204)
			} else {
				c.AbortWithStatus(403)
			}
			return
		}

		c.Next()
	}
}
