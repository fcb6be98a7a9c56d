package routes

import (
	"net/http"

	"sayohat/config"
	"sayohat/middleware"
	"sayohat/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates the gin.Engine and registers every route group.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://sayohat.uz", "https://www.sayohat.uz"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-Expires"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := utils.GetDB().DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err == nil {
			err = utils.GetRedis().Ping(utils.RedisCtx()).Err()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "result": nil, "error": "dependency unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "result": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", cfg.UploadDir)

	SetupAuthRoutes(r)
	SetupCatalogRoutes(r)
	SetupDiscoveryRoutes(r)
	SetupUserRoutes(r)
	SetupAdminRoutes(r)

	return r
}
