package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/config"
	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/database"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/internal/server"
	"github.com/tastebook/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it recipe creation is simply unthrottled.
	var createLimiter gin.HandlerFunc
	if cfg.RedisHost != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			createLimiter = middleware.NewRecipeCreationRateLimiter(redisClient).Middleware()
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)

	authHandler := api.NewAuthHandler(authService, recipeService)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, createLimiter)

	engine := router.SetupRouter(authHandler, recipeHandler)
	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
