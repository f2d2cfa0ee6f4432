package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimindapp/unimind-backend/internal/handlers"
	"github.com/unimindapp/unimind-backend/internal/middleware"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log               *logger.Logger
	AuthMiddleware    *middleware.AuthMiddleware
	HealthHandler     *handlers.HealthHandler
	PredictHandler    *handlers.PredictHandler
	AssessmentHandler *handlers.AssessmentHandler
	UserHandler       *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/health", cfg.HealthHandler.Health)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/predict", cfg.PredictHandler.Predict)
		api.POST("/save-assessment", cfg.AssessmentHandler.Save)
		api.GET("/assessments/:userId", cfg.AssessmentHandler.ListByUser)
		api.GET("/user/:userId", cfg.UserHandler.Get)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"message": "route not found", "code": "not_found"},
		})
	})

	return router
}
