// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/ora-group-views/internal/api"
	"github.com/Marga-Ghale/ora-group-views/internal/api/handlers"
	"github.com/Marga-Ghale/ora-group-views/internal/config"
	"github.com/Marga-Ghale/ora-group-views/internal/cron"
	"github.com/Marga-Ghale/ora-group-views/internal/db"
	"github.com/Marga-Ghale/ora-group-views/internal/logger"
	"github.com/Marga-Ghale/ora-group-views/internal/repository"
	"github.com/Marga-Ghale/ora-group-views/internal/seed"
	"github.com/Marga-Ghale/ora-group-views/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	logrus.Info("Running database migrations...")
	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	ctx := context.Background()

	pg, err := db.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pg.Close()

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(ctx, cfg.RedisURL)
		if err != nil {
			logrus.Warnf("Failed to connect to Redis: %v (continuing without cache)", err)
		} else {
			defer redisDB.Close()
			redisClient = redisDB.Client
			logrus.Info("Redis group cache enabled")
		}
	}

	// ============================================
	// Initialize Repositories & Services
	// ============================================
	repos := repository.NewRepositories(pg.Pool, redisClient, cfg.GroupCacheTTL)

	if cfg.SeedData && !cfg.IsProduction() {
		if err := seed.SeedData(ctx, pg.Pool); err != nil {
			logrus.Warnf("Seeding failed: %v", err)
		}
	}

	services := service.NewServices(&service.ServiceDeps{
		Config: cfg,
		Repos:  repos,
	})
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	scheduler := cron.NewScheduler(repos.Invitations, repos.GroupCache)
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := api.NewRouter(api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		Health: func() gin.H {
			return gin.H{
				"database": getDatabaseStatus(pg),
				"cache":    getCacheStatus(redisClient),
			}
		},
	}, h)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func getDatabaseStatus(pg *db.PostgresDB) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pg.Pool.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "connected"
}

func getCacheStatus(client *redis.Client) string {
	if client != nil {
		return "connected"
	}
	return "disabled"
}
