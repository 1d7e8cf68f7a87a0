package api

import (
	"decide-backend/config"
	adminDecision "decide-backend/internal/api/v1/admin/decision"
	adminPrompt "decide-backend/internal/api/v1/admin/prompt"
	adminUser "decide-backend/internal/api/v1/admin/user"
	"decide-backend/internal/api/v1/auth"
	"decide-backend/internal/api/v1/decision"
	"decide-backend/internal/api/v1/flow"
	"decide-backend/internal/api/v1/response"
	userRoutes "decide-backend/internal/api/v1/user"
	"decide-backend/internal/middleware"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Storage must be connected beforehand.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			decision.RegisterRoutes(authorized)
			flow.RegisterRoutes(authorized, cfg.MaxBodyBytes)
			response.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminAuthMiddleware())
		{
			adminPrompt.RegisterRoutes(admin)
			adminDecision.RegisterRoutes(admin)
			adminUser.RegisterRoutes(admin)
		}
	}

	return router
}
