package handler

import (
	"errors"
	"net/http"

	"jobmatch/internal/apierrors"
	authHandler "jobmatch/internal/auth/handler"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"
	"jobmatch/internal/users/processor"

	"github.com/gin-gonic/gin"
)

// ResumeFormField is the multipart field carrying the resume file
const ResumeFormField = "resume"

type Handler struct {
	processor processor.UserProcessor
	logger    *observability.Logger
}

func New(processor processor.UserProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

// UpdateProfileRequest carries optional profile changes
type UpdateProfileRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Headline *string  `json:"headline" binding:"omitempty,max=200"`
	Location *string  `json:"location" binding:"omitempty,max=200"`
	Skills   []string `json:"skills" binding:"max=50"`
}

// HandleGetUser handles GET /api/users/:id
func (h *Handler) HandleGetUser(c *gin.Context) {
	user, err := h.processor.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// HandleUpdateMe handles PUT /api/users/me
func (h *Handler) HandleUpdateMe(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	user, err := h.processor.UpdateProfile(c.Request.Context(), userID, store.UpdateProfileParams{
		Name:     req.Name,
		Headline: req.Headline,
		Location: req.Location,
		Skills:   req.Skills,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// HandleUploadResume handles POST /api/users/me/resume
func (h *Handler) HandleUploadResume(c *gin.Context) {
	userID, ok := authHandler.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, processor.MaxResumeSize+1<<20)
	fileHeader, err := c.FormFile(ResumeFormField)
	if err != nil {
		apierrors.BadRequest(c, "MISSING_FILE", "A resume file is required in the 'resume' field")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	defer file.Close()

	user, err := h.processor.SaveResume(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "resume_path": user.ResumePath})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, processor.ErrInvalidUserID):
		apierrors.BadRequest(c, "INVALID_USER_ID", "Invalid user id")
	case errors.Is(err, processor.ErrUnsupportedFileType):
		apierrors.BadRequest(c, "UNSUPPORTED_FILE_TYPE", "Resume must be a PDF or Word document")
	case errors.Is(err, processor.ErrFileTooLarge):
		apierrors.BadRequest(c, "FILE_TOO_LARGE", "Resume must be 5MB or smaller")
	case errors.Is(err, processor.ErrEmptyFile):
		apierrors.BadRequest(c, "EMPTY_FILE", "Resume file is empty")
	case errors.Is(err, store.ErrDatabaseUnavailable):
		apierrors.DatabaseUnavailable(c, err)
	default:
		apierrors.InternalError(c, err)
	}
}
