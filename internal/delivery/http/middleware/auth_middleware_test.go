package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubAuthUC resolves exactly one user id; everything else is not found.
type stubAuthUC struct {
	domain.AuthUsecase
	userID uuid.UUID
	user   *domain.User
}

func (s *stubAuthUC) GetCurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == s.userID {
		return s.user, nil
	}
	return nil, apperror.NotFound("User not found")
}

func newAuthTestRouter(tokens *token.Manager, authUC domain.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(tokens, authUC), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	userID := uuid.New()
	authUC := &stubAuthUC{
		userID: userID,
		user:   &domain.User{ID: userID, Email: "jane@example.com", Role: domain.RoleCandidate},
	}
	router := newAuthTestRouter(tokens, authUC)

	t.Run("Should accept a valid session cookie", func(t *testing.T) {
		signed, err := tokens.Generate(userID)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: signed})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should accept a bearer header fallback", func(t *testing.T) {
		signed, err := tokens.Generate(userID)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	// All rejection paths must produce the same status and body so callers
	// cannot tell which check failed.
	t.Run("Should reject every bad credential identically", func(t *testing.T) {
		expired := token.NewManager("test-secret", -time.Minute)
		expiredToken, err := expired.Generate(userID)
		assert.NoError(t, err)

		foreign := token.NewManager("other-secret", time.Hour)
		foreignToken, err := foreign.Generate(userID)
		assert.NoError(t, err)

		unknownToken, err := tokens.Generate(uuid.New())
		assert.NoError(t, err)

		cases := map[string]func(req *http.Request){
			"missing credential": func(req *http.Request) {},
			"expired token": func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: expiredToken})
			},
			"wrong signature": func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: foreignToken})
			},
			"unknown subject": func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: unknownToken})
			},
		}

		var bodies []string
		for name, setup := range cases {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, name)
			bodies = append(bodies, w.Body.String())
		}
		for _, body := range bodies[1:] {
			assert.Equal(t, bodies[0], body)
		}
	})
}
