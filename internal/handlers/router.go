package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/middleware"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

type Handlers struct {
	Workers       *WorkerHandler
	Employers     *EmployerHandler
	Jobs          *JobHandler
	Applications  *ApplicationHandler
	Notifications *NotificationHandler
}

type RouterOptions struct {
	// CORSOrigins empty or containing "*" allows every origin.
	CORSOrigins     []string
	Limiter         middleware.Limiter
	RateLimitPerMin int
	RequestTimeout  time.Duration
	Log             *slog.Logger
}

func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	RegisterValidators()
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(log), middleware.Timeout(opts.RequestTimeout))

	config := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 || opts.CORSOrigins[0] == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.CORSOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderActorID, middleware.HeaderActorRole}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	r.Use(cors.New(config))

	limited := middleware.RateLimit(opts.Limiter, opts.RateLimitPerMin, time.Minute)
	admin := middleware.RequireRole(session.RoleAdmin)

	api := r.Group("/api/v1")
	api.Use(middleware.Actor())
	{
		api.GET("/health", HealthCheck)
		api.GET("/categories", Categories)

		// Worker Routes
		api.POST("/workers", limited, h.Workers.Register)
		api.GET("/workers", admin, h.Workers.ListWorkers)
		api.GET("/workers/:id", h.Workers.GetWorker)
		api.GET("/workers/:id/applications", h.Applications.ListWorkerApplications)

		// Employer Routes
		api.POST("/employers", limited, h.Employers.Signup)
		api.POST("/employers/verify", h.Employers.VerifyBusinessNumber)
		api.GET("/employers", admin, h.Employers.ListEmployers)
		api.GET("/employers/:id", h.Employers.GetEmployer)
		api.GET("/employers/:id/jobs", h.Jobs.ListEmployerJobs)
		api.PATCH("/employers/:id/approval", admin, h.Employers.SetApproval)

		// Job Routes
		api.POST("/jobs", h.Jobs.CreateJob)
		api.GET("/jobs", h.Jobs.ListJobs)
		api.GET("/jobs/:id", h.Jobs.GetJob)
		api.PATCH("/jobs/:id/status", h.Jobs.SetStatus)
		api.POST("/jobs/:id/toggle", h.Jobs.Toggle)
		api.PATCH("/jobs/:id/category", h.Jobs.UpdateCategory)

		// Application Routes
		api.POST("/jobs/:id/applications", limited, h.Applications.Apply)
		api.POST("/jobs/:id/recommendations", admin, limited, h.Applications.Recommend)
		api.GET("/jobs/:id/applications", h.Applications.ListJobApplications)
		api.GET("/jobs/:id/applications/export", admin, h.Applications.Export)
		api.GET("/jobs/:id/matches", admin, h.Applications.Matches)
		api.PATCH("/applications/:id/status", h.Applications.SetStatus)

		// Notification Routes
		api.GET("/notifications/templates", Templates)
		api.GET("/notifications", admin, h.Notifications.Recent)
		api.POST("/notifications/broadcast", admin, limited, h.Notifications.Broadcast)
		api.POST("/notifications/dispatch", admin, h.Notifications.Dispatch)
	}
	return r
}
