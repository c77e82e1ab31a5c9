package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-interview-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header that must echo the cookie value
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. Cookie-based
// sessions with SameSite=None need it: cross-origin pages can trigger
// credentialed requests but cannot read the cookie to forge the header.
//
// The public auth endpoints are exempt: callers have no cookie yet, and the
// rate limiter covers them instead.
func CSRFMiddleware(secureCookie bool) gin.HandlerFunc {
	exemptPaths := map[string]bool{
		"/authentication/public/signup": true,
		"/authentication/public/login":  true,
		"/authentication/public/logout": true,
		"/authentication/public/google": true,
	}

	return func(c *gin.Context) {
		cookieToken, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || cookieToken == "" {
			token, genErr := generateCSRFToken()
			if genErr != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to establish CSRF protection")
				c.Abort()
				return
			}
			// Readable by the frontend so it can mirror the value back
			c.SetCookie(CSRFTokenCookieName, token, int(CSRFTokenExpiry.Seconds()), "/", "", secureCookie, false)
			cookieToken = token
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if exemptPaths[c.Request.URL.Path] {
				break
			}
			headerToken := c.GetHeader(CSRFTokenHeaderName)
			if headerToken == "" ||
				subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) != 1 {
				response.Error(c, http.StatusForbidden, "CSRF token missing or invalid")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
