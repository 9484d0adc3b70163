package handler

import (
	"errors"
	"net/http"
	"strconv"

	"jobmatch/internal/apierrors"
	authHandler "jobmatch/internal/auth/handler"
	"jobmatch/internal/jobs/processor"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.JobProcessor
	logger    *observability.Logger
}

func New(processor processor.JobProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

// CreateJobRequest represents the HTTP request for posting a job
type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required,max=200"`
	Company        string   `json:"company" binding:"required,max=200"`
	Description    string   `json:"description" binding:"required"`
	Location       string   `json:"location" binding:"max=200"`
	EmploymentType string   `json:"employment_type" binding:"omitempty,oneof=full-time part-time contract internship"`
	Skills         []string `json:"skills" binding:"max=50"`
	SalaryMin      *int     `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax      *int     `json:"salary_max" binding:"omitempty,gte=0"`
}

// UpdateJobRequest carries optional job changes
type UpdateJobRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Company        *string  `json:"company" binding:"omitempty,min=1,max=200"`
	Description    *string  `json:"description" binding:"omitempty,min=1"`
	Location       *string  `json:"location" binding:"omitempty,max=200"`
	EmploymentType *string  `json:"employment_type" binding:"omitempty,oneof=full-time part-time contract internship"`
	Skills         []string `json:"skills" binding:"max=50"`
	SalaryMin      *int     `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax      *int     `json:"salary_max" binding:"omitempty,gte=0"`
	Status         *string  `json:"status" binding:"omitempty,oneof=open closed"`
}

// ListJobsResponse is one page of jobs
type ListJobsResponse struct {
	Jobs       []store.Job `json:"jobs"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
}

// HandleListJobs handles GET /api/jobs
func (h *Handler) HandleListJobs(c *gin.Context) {
	page, err := optionalInt(c, "page")
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "page must be a number")
		return
	}
	limit, err := optionalInt(c, "limit")
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "limit must be a number")
		return
	}

	result, err := h.processor.ListJobs(c.Request.Context(), store.ListJobsParams{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Skill:    c.Query("skill"),
		Status:   c.Query("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListJobsResponse{
		Jobs:       result.Jobs,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		Limit:      result.Limit,
	})
}

// HandleGetJob handles GET /api/jobs/:id
func (h *Handler) HandleGetJob(c *gin.Context) {
	job, err := h.processor.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// HandleCreateJob handles POST /api/jobs
func (h *Handler) HandleCreateJob(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	job, err := h.processor.CreateJob(c.Request.Context(), userID, processor.CreateJobParams{
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Skills:         req.Skills,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// HandleUpdateJob handles PUT /api/jobs/:id
func (h *Handler) HandleUpdateJob(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	job, err := h.processor.UpdateJob(c.Request.Context(), userID, c.Param("id"), store.UpdateJobParams{
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Skills:         req.Skills,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// HandleDeleteJob handles DELETE /api/jobs/:id
func (h *Handler) HandleDeleteJob(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.processor.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrJobNotFound):
		apierrors.NotFound(c, "Job not found")
	case errors.Is(err, processor.ErrInvalidJobID):
		apierrors.BadRequest(c, "INVALID_JOB_ID", "Invalid job id")
	case errors.Is(err, processor.ErrNotJobOwner):
		apierrors.Forbidden(c, "NOT_JOB_OWNER", "You can only modify jobs you posted")
	case errors.Is(err, processor.ErrInvalidSalaryRange):
		apierrors.BadRequest(c, "INVALID_SALARY_RANGE", "salary_min must not exceed salary_max")
	case errors.Is(err, processor.ErrInvalidStatus):
		apierrors.BadRequest(c, "INVALID_STATUS", "status must be open or closed")
	case errors.Is(err, store.ErrInvalidID):
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
	case errors.Is(err, store.ErrDatabaseUnavailable):
		apierrors.DatabaseUnavailable(c, err)
	default:
		apierrors.InternalError(c, err)
	}
}
