package api

import (
	"net/http"
	"time"

	"jobmatch/internal/apierrors"
	applicationHandler "jobmatch/internal/applications/handler"
	authHandler "jobmatch/internal/auth/handler"
	jobHandler "jobmatch/internal/jobs/handler"
	"jobmatch/internal/ratelimit"
	"jobmatch/internal/store"
	userHandler "jobmatch/internal/users/handler"

	"github.com/gin-gonic/gin"
)

// StatusResponse is returned by GET /api and GET /api/health
type StatusResponse struct {
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
}

type API struct {
	router             *gin.Engine
	environment        string
	monitor            *store.Monitor
	authRateLimit      *ratelimit.Service
	authHandler        authHandler.Handler
	jobHandler         jobHandler.Handler
	userHandler        userHandler.Handler
	applicationHandler applicationHandler.Handler
}

func New(
	router *gin.Engine,
	environment string,
	monitor *store.Monitor,
	authRateLimit *ratelimit.Service,
	authHandler authHandler.Handler,
	jobHandler jobHandler.Handler,
	userHandler userHandler.Handler,
	applicationHandler applicationHandler.Handler,
) API {
	return API{
		router:             router,
		environment:        environment,
		monitor:            monitor,
		authRateLimit:      authRateLimit,
		authHandler:        authHandler,
		jobHandler:         jobHandler,
		userHandler:        userHandler,
		applicationHandler: applicationHandler,
	}
}

func (a *API) RegisterRoutes() {
	apiGroup := a.router.Group("/api")
	apiGroup.GET("", a.status("Job Matching Platform API is running"))
	apiGroup.GET("/health", a.status("OK"))

	authGroup := apiGroup.Group("/auth", a.authRateLimit.Middleware())
	{
		authGroup.POST("/register", a.authHandler.HandleRegister)
		authGroup.POST("/login", a.authHandler.HandleLogin)
		authGroup.GET("/me", a.authHandler.RequireAuth, a.authHandler.HandleMe)
	}

	jobsGroup := apiGroup.Group("/jobs")
	{
		jobsGroup.GET("", a.jobHandler.HandleListJobs)
		jobsGroup.GET("/:id", a.jobHandler.HandleGetJob)
		employer := jobsGroup.Group("", a.authHandler.RequireAuth, authHandler.RequireRole(store.RoleEmployer))
		employer.POST("", a.jobHandler.HandleCreateJob)
		employer.PUT("/:id", a.jobHandler.HandleUpdateJob)
		employer.DELETE("/:id", a.jobHandler.HandleDeleteJob)
	}

	usersGroup := apiGroup.Group("/users")
	{
		me := usersGroup.Group("/me", a.authHandler.RequireAuth)
		me.PUT("", a.userHandler.HandleUpdateMe)
		me.POST("/resume", a.userHandler.HandleUploadResume)
		usersGroup.GET("/:id", a.userHandler.HandleGetUser)
	}

	applicationsGroup := apiGroup.Group("/applications", a.authHandler.RequireAuth)
	{
		applicationsGroup.POST("", authHandler.RequireRole(store.RoleSeeker), a.applicationHandler.HandleApply)
		applicationsGroup.GET("/me", a.applicationHandler.HandleListMine)
		applicationsGroup.GET("/job/:jobId", authHandler.RequireRole(store.RoleEmployer), a.applicationHandler.HandleListForJob)
		applicationsGroup.PUT("/:id/status", authHandler.RequireRole(store.RoleEmployer), a.applicationHandler.HandleUpdateStatus)
	}

	a.router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})
}

// status reports liveness. The database state is read on every request.
func (a *API) status(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatusResponse{
			Message:     message,
			Timestamp:   time.Now().UTC(),
			Environment: a.environment,
			Database:    a.monitor.State().String(),
		})
	}
}
