package handler

import (
	"errors"
	"net/http"

	"jobmatch/internal/apierrors"
	"jobmatch/internal/applications/processor"
	authHandler "jobmatch/internal/auth/handler"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.ApplicationProcessor
	logger    *observability.Logger
}

func New(processor processor.ApplicationProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type ApplyRequest struct {
	JobID       string `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
}

// HandleApply handles POST /api/applications
func (h *Handler) HandleApply(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	app, err := h.processor.Apply(c.Request.Context(), userID, req.JobID, req.CoverLetter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// HandleListMine handles GET /api/applications/me
func (h *Handler) HandleListMine(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	apps, err := h.processor.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// HandleListForJob handles GET /api/applications/job/:jobId
func (h *Handler) HandleListForJob(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	apps, err := h.processor.ListForJob(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// HandleUpdateStatus handles PUT /api/applications/:id/status
func (h *Handler) HandleUpdateStatus(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	app, err := h.processor.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrJobNotFound):
		apierrors.NotFound(c, "Job not found")
	case errors.Is(err, processor.ErrApplicationNotFound):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, processor.ErrInvalidID):
		apierrors.BadRequest(c, "INVALID_ID", "Invalid id")
	case errors.Is(err, processor.ErrJobClosed):
		apierrors.Conflict(c, "JOB_CLOSED", "This job is no longer accepting applications")
	case errors.Is(err, processor.ErrAlreadyApplied):
		apierrors.Conflict(c, "ALREADY_APPLIED", "You have already applied to this job")
	case errors.Is(err, processor.ErrNotJobOwner):
		apierrors.Forbidden(c, "NOT_JOB_OWNER", "Only the employer who posted this job can do that")
	case errors.Is(err, processor.ErrInvalidStatus):
		apierrors.BadRequest(c, "INVALID_STATUS", "Invalid application status")
	case errors.Is(err, store.ErrDatabaseUnavailable):
		apierrors.DatabaseUnavailable(c, err)
	default:
		apierrors.InternalError(c, err)
	}
}
