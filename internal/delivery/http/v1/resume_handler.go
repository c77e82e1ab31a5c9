package v1

import (
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(group *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	group.POST("/upload-process", handler.UploadAndProcess)
	group.POST("/ask", handler.Ask)
	group.GET("/analytics", handler.Analytics)
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// UploadAndProcess godoc
// @Summary      Upload Resumes
// @Description  Relays uploaded resume files to the processing service and counts them against the HR profile
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Resume files"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /resume/upload-process [post]
func (h *ResumeHandler) UploadAndProcess(c *gin.Context) {
	hr, ok := requireHR(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("Invalid multipart form"))
		return
	}

	result, err := h.resumeUC.UploadAndProcess(c.Request.Context(), hr.ID, form.File["files"])
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resumes processed successfully", gin.H{"result": result})
}

// Ask godoc
// @Summary      Query Resumes
// @Description  Relays a natural-language question to the processing service
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        ask  body      AskRequest  true  "Question"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /resume/ask [post]
func (h *ResumeHandler) Ask(c *gin.Context) {
	hr, ok := requireHR(c)
	if !ok {
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.resumeUC.Ask(c.Request.Context(), hr.ID, req.Question)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Query answered successfully", gin.H{"result": result})
}

// Analytics godoc
// @Summary      HR Analytics
// @Description  Returns the activity counters for the authenticated HR user
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /resume/analytics [get]
func (h *ResumeHandler) Analytics(c *gin.Context) {
	hr, ok := requireHR(c)
	if !ok {
		return
	}

	profile, err := h.resumeUC.Analytics(c.Request.Context(), hr.ID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Analytics retrieved successfully", gin.H{"analytics": profile})
}
