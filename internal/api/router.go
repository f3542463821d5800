package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bloglist/bloglist-api/docs"
	"github.com/bloglist/bloglist-api/internal/api/handler"
	"github.com/bloglist/bloglist-api/internal/api/middleware"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/core/service"
	"github.com/bloglist/bloglist-api/internal/infrastructure/config"
	storemongo "github.com/bloglist/bloglist-api/internal/infrastructure/db/mongo"
	storeredis "github.com/bloglist/bloglist-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// activity may be nil to disable the audit trail (tests do this).
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, activity ports.ActivitySink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware, in pipeline order ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("bloglist"))
	e.Use(middleware.TokenExtractor())

	// --- Dependencies ---
	blogRepo := storemongo.NewBlogRepository(db)
	userRepo := storemongo.NewUserRepository(db)
	activityRepo := storemongo.NewActivityRepository(db)

	var limiter ports.LoginLimiter
	if rdb != nil {
		limiter = storeredis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.BlockWindow)
	}

	authService := service.NewAuthService(userRepo, limiter, cfg.JWTSecret, log)
	userService := service.NewUserService(userRepo, log)
	blogService := service.NewBlogService(blogRepo, userRepo, activity, log)

	blogHandler := handler.NewBlogHandler(blogService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)

	// requireUser is mounted only on routes that demand authentication;
	// anonymous routes skip token verification entirely (per-route policy,
	// not a global resolver).
	requireUser := middleware.RequireUser(authService)

	// --- API routes ---
	e.GET("/api/blogs", blogHandler.List)
	e.POST("/api/blogs", blogHandler.Create, requireUser)
	e.PUT("/api/blogs/:id", blogHandler.Update)
	e.DELETE("/api/blogs/:id", blogHandler.Delete, requireUser)

	e.GET("/api/users", userHandler.List)
	e.POST("/api/users", userHandler.Create)

	e.POST("/api/login", authHandler.Login)

	// Test-only surface: bulk reset is never mounted outside the test env.
	if cfg.Env == "test" {
		testingHandler := handler.NewTestingHandler(blogRepo, userRepo, activityRepo, log)
		e.POST("/api/testing/reset", testingHandler.Reset)
	}

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "unknown endpoint")
	})

	return e
}
