package handlers

import (
	"github.com/clientbook/client_records_app/cmd/docs"
	portssvc "github.com/clientbook/client_records_app/internal/core/ports/services"
	"github.com/clientbook/client_records_app/internal/middleware"
	"github.com/clientbook/client_records_app/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using the service interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	clientService portssvc.ClientSvcFacade,
	recordService portssvc.RecordSvcFacade,
	reconciler portssvc.ReconcilerSvc,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	setupAPIV1Routes(r, cfg, clientService, recordService, reconciler)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	clientService portssvc.ClientSvcFacade,
	recordService portssvc.RecordSvcFacade,
	reconciler portssvc.ReconcilerSvc,
) {
	rate, _ := limiter.NewRateFromFormatted(cfg.RateLimit)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter))

	registerClientRoutes(v1, clientService, reconciler)
	registerRecordRoutes(v1, recordService)
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
