package routes

import (
	"os"

	"assetconsole/internal/core/container"
	"assetconsole/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(c.Logger),
		middleware.RequestLogger(c.Logger),
		middleware.TimeoutMiddleware(c.Config.RequestTimeout),
	)

	RegisterPublicRoutes(router, c)
	RegisterUtilityRoutes(router, c.Logger)

	return router
}

// RegisterPublicRoutes mounts every handler. Handlers guard their own groups with JWTMiddleware.
func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	c.BindingHandler.RegisterRoutes(router)
	c.ImportHandler.RegisterRoutes(router)

	if c.AuditLogHandler != nil {
		c.AuditLogHandler.RegisterRoutes(router)
		middleware.SetAuditLogStatus("enabled")
	}
}

func RegisterUtilityRoutes(router *gin.Engine, logger *zap.Logger) {
	router.GET("/health", middleware.HealthCheckMiddleware())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
		logger.Info("Route docs/index.html registered successfully.")
	} else {
		logger.Debug("openapi file not found, route /openapi.html not registered", zap.String("path", openapiFilePath))
	}
}
