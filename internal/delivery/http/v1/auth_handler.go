package v1

import (
	"net/http"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60 // 24 hours

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
	}

	// Public Routes
	publicAuth := public.Group("/public")
	{
		publicAuth.POST("/signup", handler.Signup)
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/logout", handler.Logout)
		publicAuth.POST("/google", handler.Google)
	}

	// Protected Routes
	protected.GET("/verify-token", handler.VerifyToken)
}

type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleAuthRequest struct {
	Token string `json:"token" binding:"required"`
}

// Signup godoc
// @Summary      User Registration
// @Description  Register a new user with email and password
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        signup  body      SignupRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /authentication/public/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := &domain.SignupInput{
		FirstName: req.FirstName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if req.LastName != "" {
		in.LastName = &req.LastName
	}

	user, err := h.authUC.Signup(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password; sets the HTTP-only session cookie
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /authentication/public/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, user, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusOK, "Login successful", gin.H{"user": user})
}

// Logout godoc
// @Summary      User Logout
// @Description  Clears the session cookie
// @Tags         authentication
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /authentication/public/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Google godoc
// @Summary      Google Sign-In
// @Description  Verify a Google ID token; creates or links the local account and sets the session cookie
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        google  body      GoogleAuthRequest  true  "Google ID Token"
// @Success      200  {object}  response.Response
// @Success      201  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /authentication/public/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, user, created, err := h.authUC.GoogleAuth(c.Request.Context(), req.Token)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, token)

	code := http.StatusOK
	msg := "Login successful"
	if created {
		code = http.StatusCreated
		msg = "Account created successfully"
	}
	response.Success(c, code, msg, gin.H{"user": user})
}

// VerifyToken godoc
// @Summary      Verify Session
// @Description  Reports whether the session cookie is valid
// @Tags         authentication
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /authentication/verify-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	// Reaching this handler means the auth middleware accepted the token
	response.Success(c, http.StatusOK, "Token is valid", gin.H{"valid": true})
}

// setSessionCookie writes the session token: HTTP-only, 24h, path /.
// Production requires Secure + SameSite=None for the cross-site frontend;
// development keeps SameSite=Lax over plain HTTP.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	if h.config.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.SessionCookieName, token, sessionMaxAge, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, sessionMaxAge, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	if h.config.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}
