package v1

import (
	"net/http"

	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authUC domain.AuthUsecase
}

func NewUserHandler(group *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &UserHandler{authUC: authUC}

	group.GET("/profile", handler.GetProfile)
	group.PUT("/role", handler.UpdateRole)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetProfile godoc
// @Summary      Get Current User
// @Description  Returns the profile of the authenticated user
// @Tags         user
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(apperror.Unauthorized("Unauthorized"))
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", gin.H{"user": user})
}

// UpdateRole godoc
// @Summary      Assign Role
// @Description  Assigns a role to the authenticated user; creates the HR profile for hr
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        role  body      UpdateRoleRequest  true  "Role"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /user/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		c.Error(apperror.BadRequest("Invalid role"))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(apperror.Unauthorized("Unauthorized"))
		return
	}

	updated, err := h.authUC.AssignRole(c.Request.Context(), user.ID, role)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role updated successfully", gin.H{"user": updated})
}
