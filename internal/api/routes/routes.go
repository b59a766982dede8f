package routes

import (
	"context"

	"internhub-api/internal/api/handlers"
	"internhub-api/internal/api/middleware"
	"internhub-api/internal/app"
	"internhub-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Guards bundles the authentication and authorization middleware that the
// resource route files compose per group.
type Guards struct {
	Auth            gin.HandlerFunc
	OptionalAuth    gin.HandlerFunc
	Partner         gin.HandlerFunc
	Student         gin.HandlerFunc
	Admin           gin.HandlerFunc
	ApprovedPartner gin.HandlerFunc
}

// NewGuards builds the standard guards from the application container.
func NewGuards(app *app.Application) Guards {
	return Guards{
		Auth:            middleware.JWTAuthMiddleware(app.Resolver, app.Log),
		OptionalAuth:    middleware.OptionalAuthMiddleware(app.Resolver, app.Log),
		Partner:         middleware.Authorize(middleware.RequireRole(models.RolePartner)),
		Student:         middleware.Authorize(middleware.RequireRole(models.RoleStudent)),
		Admin:           middleware.Authorize(middleware.RequireRole(models.RoleAdmin)),
		ApprovedPartner: middleware.Authorize(middleware.RequireApprovedPartner(app.Partners)),
	}
}

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")
	if app.Config.RateLimit.Enabled {
		apiV1.Use(middleware.RateLimit(app.Limiter, app.Config.RateLimit.Requests, app.Config.RateLimit.Window))
	}

	// Create handlers
	partnerHandler := handlers.NewPartnerHandler(app.Partners, app.Validator, app.Log)
	jobHandler := handlers.NewJobHandler(app.Jobs, app.Validator, app.Log)
	applicationHandler := handlers.NewApplicationHandler(app.Applications, app.Validator, app.Log)
	studentHandler := handlers.NewStudentHandler(app.Discovery, app.Validator, app.Config.Discovery.MaxPageSize, app.Log)

	guards := NewGuards(app)

	// --- Register Resource Routes ---
	RegisterPartnerRoutes(apiV1, partnerHandler, guards)
	RegisterJobRoutes(apiV1, jobHandler, guards)
	RegisterApplicationRoutes(apiV1, applicationHandler, guards)
	RegisterStudentRoutes(apiV1, studentHandler, guards)

	// --- Health Check ---
	checks := map[string]handlers.HealthCheckFunc{}
	if app.DBPool != nil {
		checks["postgres"] = app.DBPool.Ping
	}
	if client := app.RedisClient; client != nil {
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	router.GET("/health", handlers.NewHealthHandler(checks).HealthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
