package middleware

import (
	"net/http"
	"strings"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "token"

// AuthMiddleware resolves the session credential to a user and attaches the
// identity to the request context. Missing cookie, bad signature, expiry and
// unknown subject all collapse into one indistinguishable 401.
func AuthMiddleware(tokens *token.Manager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. Try the session cookie
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			tokenString = cookie
		} else if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			// 2. Fall back to a bearer header for non-browser clients
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			unauthorized(c)
			return
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), userID)
		if err != nil {
			// Token may outlive the account; treat it like any bad credential.
			unauthorized(c)
			return
		}

		c.Set(string(domain.KeyUser), user)
		c.Set(string(domain.KeyUserID), user.ID.String())
		c.Set(string(domain.KeyUserRole), string(user.Role))

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, "Unauthorized")
	c.Abort()
}

// CurrentUser pulls the resolved identity out of the gin context.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
