package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/campushub/degree-course-api/internal/auth"
	"github.com/campushub/degree-course-api/internal/config"
	"github.com/campushub/degree-course-api/internal/handler"    // import the handlers that implement business logic
	"github.com/campushub/degree-course-api/internal/middleware" // import middleware for authentication and authorization
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Authenticate *handler.AuthenticateHandler
	Users        *handler.UserHandler
	Courses      *handler.DegreeCourseHandler
	Applications *handler.ApplicationHandler
}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the full API surface.
//
// Every protected group runs the same chain: Authenticate first (it owns
// the bearer token and attaches the identity), then the group's
// authorization policy.  The /api/publicUsers group is the deliberately
// open registration surface and carries no middleware at all, mirroring
// /api/users otherwise.  Course read endpoints additionally get the Redis
// response cache, placed after authorization so only requests that already
// passed the policy are served from cache.
func RegisterAPI(e *echo.Echo, ev *auth.Evaluator, cacheCfg config.CacheConfig, rdb *redis.Client, h Handlers) {
	e.GET("/api/authenticate", h.Authenticate.Authenticate)

	users := e.Group("/api/users", middleware.Authenticate(ev), middleware.RequireUserRights())
	users.GET("", h.Users.List)
	users.GET("/:userID", h.Users.Get)
	users.POST("", h.Users.Create)
	users.PUT("/:userID", h.Users.Update)
	users.DELETE("/:userID", h.Users.Delete)

	public := e.Group("/api/publicUsers")
	public.GET("", h.Users.List)
	public.GET("/:userID", h.Users.Get)
	public.POST("", h.Users.Create)
	public.PUT("/:userID", h.Users.Update)
	public.DELETE("/:userID", h.Users.Delete)

	cache := middleware.ResponseCache(cacheCfg, rdb)
	courses := e.Group("/api/degreeCourses", middleware.Authenticate(ev), middleware.RequireDegreeCourseRights())
	courses.GET("", h.Courses.List, cache)
	courses.GET("/:courseID", h.Courses.Get, cache)
	courses.GET("/:courseID/degreeCourseApplications", h.Courses.ListApplications)
	courses.POST("", h.Courses.Create)
	courses.PUT("/:courseID", h.Courses.Update)
	courses.DELETE("/:courseID", h.Courses.Delete)

	apps := e.Group("/api/degreeCourseApplications", middleware.Authenticate(ev), middleware.RequireApplicationRights())
	apps.GET("/myApplications", h.Applications.MyApplications)
	apps.GET("", h.Applications.List)
	apps.GET("/:applicationID", h.Applications.Get)
	apps.POST("", h.Applications.Create)
	apps.PUT("/:applicationID", h.Applications.Update)
	apps.DELETE("/:applicationID", h.Applications.Delete)
}
