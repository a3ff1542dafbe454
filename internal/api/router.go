package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/MarckFp/ppoc-gen-v2/internal/engine"
	"github.com/MarckFp/ppoc-gen-v2/internal/job"
	"github.com/MarckFp/ppoc-gen-v2/internal/logger"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// Router creates and configures the Echo router.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
}

// NewRouter creates a new Echo router with all routes registered.
func NewRouter(store repository.Database, driver *engine.Driver, scheduler *job.JobScheduler, logger *zap.SugaredLogger) *Router {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(logger.RequestIDMiddleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{
		echo:     e,
		handlers: NewHandlers(store, driver, scheduler, logger),
	}

	r.registerRoutes()

	return r
}

// registerRoutes configures all API routes.
func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.GET("/api/health/db", r.handlers.HealthDB)
	r.echo.GET("/api/health/redis", r.handlers.HealthRedis)

	r.echo.POST("/api/availability", r.handlers.SetAvailabilityBulk)

	publisherGroup := r.echo.Group("/api/publishers")
	publisherGroup.POST("", r.handlers.CreatePublisher)
	publisherGroup.GET("", r.handlers.ListPublishers)
	publisherGroup.GET("/:id", r.handlers.GetPublisher)
	publisherGroup.PUT("/:id", r.handlers.UpdatePublisher)
	publisherGroup.DELETE("/:id", r.handlers.DeletePublisher)
	publisherGroup.POST("/:id/availability", r.handlers.SetAvailability)
	publisherGroup.DELETE("/:id/availability/:scheduleID", r.handlers.UnsetAvailability)
	publisherGroup.POST("/:id/absences", r.handlers.CreateAbsence)
	publisherGroup.GET("/:id/absences", r.handlers.ListAbsences)
	publisherGroup.GET("/:id/relationships", r.handlers.ListRelationships)

	scheduleGroup := r.echo.Group("/api/schedules")
	scheduleGroup.POST("", r.handlers.CreateSchedule)
	scheduleGroup.GET("", r.handlers.ListSchedules)
	scheduleGroup.GET("/:id", r.handlers.GetSchedule)
	scheduleGroup.DELETE("/:id", r.handlers.DeleteSchedule)

	absenceGroup := r.echo.Group("/api/absences")
	absenceGroup.DELETE("/:id", r.handlers.DeleteAbsence)

	relationshipGroup := r.echo.Group("/api/relationships")
	relationshipGroup.POST("", r.handlers.CreateRelationship)
	relationshipGroup.DELETE("/:id", r.handlers.DeleteRelationship)

	r.echo.GET("/api/shifts", r.handlers.ListShifts)
	r.echo.POST("/api/generate", r.handlers.GenerateShifts)
}

// Start starts the HTTP server.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (r *Router) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.echo.Shutdown(ctx)
}

// Echo exposes the underlying Echo instance so callers can mount
// additional handlers, such as a Prometheus scrape endpoint, without
// this package needing to depend on metrics.
func (r *Router) Echo() *echo.Echo {
	return r.echo
}

// Note: response helpers are defined in response.go
// - SuccessResponse(data interface{}) *APIResponse
// - ErrorResponseWithCode(code, message string) *APIResponse
// - ValidationErrorResponse(result *validation.Result) *APIResponse
