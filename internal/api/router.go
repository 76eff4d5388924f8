package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnhub/learnhub-api/internal/api/handler"
	"github.com/learnhub/learnhub-api/internal/api/middleware"
	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// Deps carries everything the router needs. MongoDB and Redis handles are
// optional; when nil the readiness probe reports them as disabled.
type Deps struct {
	AuthService       ports.AuthService
	CourseService     ports.CourseService
	LessonService     ports.LessonService
	EnrollmentService ports.EnrollmentService
	ProfileService    ports.ProfileService

	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("learnhub"))

	auth := middleware.Auth(deps.JWTSecret)
	authorRoles := middleware.RBAC(domain.RoleInstructor, domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	courseHandler := handler.NewCourseHandler(deps.CourseService)
	lessonHandler := handler.NewLessonHandler(deps.LessonService)
	enrollmentHandler := handler.NewEnrollmentHandler(deps.EnrollmentService)
	profileHandler := handler.NewProfileHandler(deps.ProfileService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public catalog ---
	v1 := e.Group("/v1")
	v1.GET("/courses", courseHandler.List)
	v1.GET("/courses/featured", courseHandler.Featured)
	v1.GET("/courses/:id", courseHandler.Get)

	// --- Course management ---
	// Only authoring needs the role gate up front; update and delete are
	// ownership-checked in the service so admins and owners both pass.
	v1.POST("/courses", courseHandler.Create, auth, authorRoles)
	v1.PATCH("/courses/:id", courseHandler.Update, auth)
	v1.DELETE("/courses/:id", courseHandler.Delete, auth)

	// --- Lessons ---
	v1.GET("/courses/:id/lessons", lessonHandler.List, auth)
	v1.POST("/courses/:id/lessons", lessonHandler.Create, auth)
	v1.PUT("/courses/:id/lessons/:lesson_id", lessonHandler.Update, auth)
	v1.DELETE("/courses/:id/lessons/:lesson_id", lessonHandler.Delete, auth)
	v1.POST("/courses/:id/lessons/reorder", lessonHandler.Reorder, auth)

	// --- Enrollment ledger ---
	v1.POST("/courses/:id/enroll", enrollmentHandler.Enroll, auth)
	v1.GET("/courses/:id/enroll", enrollmentHandler.Status, auth)
	v1.DELETE("/courses/:id/enroll", enrollmentHandler.Unenroll, auth)

	// --- Caller-scoped views ---
	v1.GET("/me/courses", courseHandler.MyCourses, auth)
	v1.GET("/me/profile", profileHandler.Get, auth)
	v1.PUT("/me/profile", profileHandler.Update, auth)

	return e
}
