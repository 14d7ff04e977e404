package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/api"
)

// SetupRouter configures the application routes
func SetupRouter(authHandler *api.AuthHandler, recipeHandler *api.RecipeHandler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	return router
}
