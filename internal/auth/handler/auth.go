package handler

import (
	"errors"
	"net/http"
	"strings"

	"jobmatch/internal/apierrors"
	"jobmatch/internal/auth/processor"
	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/gin-gonic/gin"
)

// Keys set on the gin context by RequireAuth
const (
	UserIDKey   = "User-ID"
	UserRoleKey = "User-Role"
)

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=seeker employer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleRegister handles POST /api/auth/register
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.authProcessor.Register(c.Request.Context(), processor.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// HandleLogin handles POST /api/auth/login
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.authProcessor.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleMe handles GET /api/auth/me
func (h *Handler) HandleMe(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authProcessor.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RequireAuth rejects requests without a valid bearer token and
// stores the caller's id and role on the context.
func (h *Handler) RequireAuth(c *gin.Context) {
	tokenHeader := c.GetHeader("Authorization")
	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	claims, err := h.authProcessor.ValidateToken(c.Request.Context(), strings.TrimPrefix(tokenHeader, "Bearer "))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Set(UserIDKey, claims.Subject)
	c.Set(UserRoleKey, claims.Role)
	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "user_id", Value: claims.Subject})
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// RequireRole must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != role {
			apierrors.Forbidden(c, "FORBIDDEN_ROLE", "This action requires the "+role+" role")
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	return userID, userID != ""
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrEmailAlreadyExists):
		apierrors.Conflict(c, "EMAIL_EXISTS", "An account with this email already exists")
	case errors.Is(err, processor.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, processor.ErrInvalidRole):
		apierrors.BadRequest(c, "INVALID_ROLE", "Role must be seeker or employer")
	case errors.Is(err, processor.ErrExpiredToken):
		apierrors.Unauthorized(c, "Token has expired")
	case errors.Is(err, processor.ErrInvalidToken):
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
	case errors.Is(err, processor.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.ServiceUnavailable(c, "AUTH_NOT_CONFIGURED", "Authentication is not configured on this server", err)
	case errors.Is(err, store.ErrDatabaseUnavailable):
		apierrors.DatabaseUnavailable(c, err)
	default:
		apierrors.InternalError(c, err)
	}
}
