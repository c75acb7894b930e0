package handlers

import (
	"net/http"

	"github.com/SscSPs/negotiation_tracker/cmd/docs"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/SscSPs/negotiation_tracker/internal/platform/config"
	"github.com/SscSPs/negotiation_tracker/internal/platform/metrics"
	"github.com/SscSPs/negotiation_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps are the optional collaborators of the HTTP layer. Nil fields disable the feature.
type RouteDeps struct {
	Metrics   *metrics.Metrics
	Posthog   *utils.PosthogClientWrapper
	AILimiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(deps.Posthog),
	)

	var assist []gin.HandlerFunc
	if deps.AILimiter != nil {
		assist = append(assist, middleware.RateLimit(deps.AILimiter))
	}

	RegisterStoreRoutes(v1, service.Store)
	RegisterNegotiationRoutes(v1, service.Store, service.Views)
	RegisterDashboardRoutes(v1, service.Views)
	RegisterFormRoutes(v1, service.Forms, assist...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
