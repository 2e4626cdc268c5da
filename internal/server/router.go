// Package server assembles the gin engine: global middleware, the /api
// route groups and the fallback handlers.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"todo-be/internal/config"
	"todo-be/internal/controllers"
	"todo-be/internal/middleware"
	"todo-be/internal/service"
)

// MaxBodyBytes caps JSON request bodies
const MaxBodyBytes = 10 << 10

// Services are the business dependencies the routes call into
type Services struct {
	Auth service.AuthService
	Todo service.TodoService
}

// NewRouter builds the HTTP handler. ctx bounds the rate limiters' background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, svc Services, logger *slog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()

	router := gin.New()

	router.Use(
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger, cfg.IsProduction()),
		middleware.Recovery(logger),
		middleware.SecurityHeaders(cfg.IsProduction()),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-XSRF-TOKEN", "X-CSRF-Token"},
			AllowCredentials: true,
		}),
		middleware.BodyLimit(MaxBodyBytes),
	)
	if cfg.CSRFEnabled {
		router.Use(middleware.CSRF(cfg.IsProduction()))
	}

	router.GET("/health", controllers.Health)
	router.NoRoute(middleware.NotFound())

	authController := controllers.NewAuthController(svc.Auth)
	todoController := controllers.NewTodoController(svc.Todo)

	generalLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	api := router.Group("/api")
	api.Use(generalLimiter.LimitMiddleware())
	{
		api.GET("/csrf-token", controllers.CSRFToken)

		auth := api.Group("/auth")
		auth.Use(authLimiter.LimitMiddleware())
		{
			auth.POST("/signup", authController.Signup)
			auth.POST("/signin", authController.Signin)
		}

		todos := api.Group("/todos")
		todos.Use(middleware.AuthMiddleware(svc.Auth))
		{
			todos.POST("", todoController.Create)
			todos.GET("", todoController.List)
			todos.GET("/:id", todoController.Get)
			todos.PATCH("/:id", todoController.Update)
			todos.DELETE("/:id", todoController.Delete)
		}
	}

	return router
}
