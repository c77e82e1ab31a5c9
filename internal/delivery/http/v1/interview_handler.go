package v1

import (
	"net/http"
	"strconv"

	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(group *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	group.POST("/invite", handler.Invite)
	group.POST("/reject", handler.Reject)
	group.GET("/get-interviews/:candidateId", handler.ListByCandidate)
}

type InviteRequest struct {
	CandidateEmail string `json:"candidateEmail" binding:"required,email"`
	CandidateName  string `json:"candidateName" binding:"required"`
	InterviewType  string `json:"interviewType" binding:"required"`
	JobDescription string `json:"jobDescription"`
}

type RejectRequest struct {
	CandidateEmail string `json:"candidateEmail" binding:"required,email"`
	CandidateName  string `json:"candidateName" binding:"required"`
}

// Invite godoc
// @Summary      Invite Candidate
// @Description  Upserts the candidate, creates an interview, sends the invitation email and bumps the HR counter in one transaction
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        invite  body      InviteRequest  true  "Invitation Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /interview/invite [post]
func (h *InterviewHandler) Invite(c *gin.Context) {
	hr, ok := requireHR(c)
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := &domain.InviteInput{
		CandidateEmail: req.CandidateEmail,
		CandidateName:  req.CandidateName,
		InterviewType:  domain.InterviewType(req.InterviewType),
	}
	if req.JobDescription != "" {
		in.JobDescription = &req.JobDescription
	}

	interview, err := h.interviewUC.Invite(c.Request.Context(), hr.ID, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview invitation sent successfully", gin.H{
		"interview": interview,
	})
}

// Reject godoc
// @Summary      Reject Candidate
// @Description  Sends a rejection email and bumps the HR rejection counter in one transaction
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        reject  body      RejectRequest  true  "Rejection Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /interview/reject [post]
func (h *InterviewHandler) Reject(c *gin.Context) {
	hr, ok := requireHR(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	in := &domain.RejectInput{
		CandidateEmail: req.CandidateEmail,
		CandidateName:  req.CandidateName,
	}

	if err := h.interviewUC.Reject(c.Request.Context(), hr.ID, in); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Rejection email sent successfully", nil)
}

// ListByCandidate godoc
// @Summary      List Candidate Interviews
// @Description  Returns one page of interviews for the candidate, oldest first
// @Tags         interview
// @Produce      json
// @Param        candidateId  path      string  true   "Candidate ID"
// @Param        page         query     int     false  "Page number"  default(1)
// @Param        limit        query     int     false  "Page size"    default(10)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interview/get-interviews/{candidateId} [get]
func (h *InterviewHandler) ListByCandidate(c *gin.Context) {
	candidateID, err := uuid.Parse(c.Param("candidateId"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	interviews, meta, err := h.interviewUC.ListByCandidate(c.Request.Context(), candidateID, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved successfully", gin.H{
		"interviews": interviews,
		"pagination": meta,
	})
}

// requireHR resolves the authenticated user and rejects non-HR callers.
func requireHR(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Error(apperror.Unauthorized("Unauthorized"))
		return nil, false
	}
	if user.Role != domain.RoleHR {
		c.Error(apperror.Forbidden("Only HR users can perform this action"))
		return nil, false
	}
	return user, true
}
