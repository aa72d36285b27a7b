package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm/logger"

	"github.com/aymanElshayeb/reactExampleBackend/internal/config"
	"github.com/aymanElshayeb/reactExampleBackend/internal/database"
	"github.com/aymanElshayeb/reactExampleBackend/internal/handlers"
	"github.com/aymanElshayeb/reactExampleBackend/internal/middleware"
	"github.com/aymanElshayeb/reactExampleBackend/internal/monitoring"
	"github.com/aymanElshayeb/reactExampleBackend/internal/repositories"
	"github.com/aymanElshayeb/reactExampleBackend/internal/services"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	DB     *database.DatabasePool
	Redis  *redis.Client
	Router *gin.Engine
	Server *http.Server

	// Services
	TaskService services.TaskService
	UserService services.UserService
}

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing Task Management Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	pool, err := database.NewDatabasePool(&database.PoolConfig{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.DB = pool

	log.Println("✅ Database connected and configured")

	// Schema management: versioned SQL migrations on postgres, gorm
	// auto-migration on sqlite.
	if cfg.Database.Driver == "postgres" {
		migrationConfig := &repositories.MigrationConfig{
			MigrationsPath: "file://migrations",
			DBName:         cfg.Database.Name,
			MaxRetries:     3,
			RetryDelay:     2 * time.Second,
		}
		if err := repositories.RunMigrations(pool.DB, migrationConfig); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	} else {
		if err := repositories.AutoMigrate(pool.DB); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		log.Println("✅ Database schema auto-migrated")
	}

	if cfg.GetRedisAddr() != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️  Redis unavailable: %v (falling back to in-process rate limiting)", err)
		} else {
			app.Redis = redisClient
			log.Println("✅ Redis connected")
		}
	}

	// Initialize repositories and services
	taskRepo := repositories.NewTaskRepository(pool.DB)
	userRepo := repositories.NewUserRepository(pool.DB)

	app.TaskService = services.NewTaskService(taskRepo)
	app.UserService = services.NewUserService(userRepo, taskRepo)

	log.Println("✅ All services initialized")

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return app.DB.Health()
	})
	if app.Redis != nil {
		monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())
	r.Use(middleware.RequestID())

	// Rate limiting: shared sliding window when redis is available,
	// per-process token bucket otherwise.
	if app.Redis != nil {
		limiter := middleware.NewDistributedRateLimiter(app.Redis)
		r.Use(limiter.CreateMiddleware("api", &middleware.RateLimit{
			Rate:    app.Config.RateLimit.RequestsPerMin,
			Window:  time.Minute,
			KeyFunc: middleware.IPKeyFunc,
		}))
	} else {
		rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
		r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))
	}

	// The original surface is open to any origin.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Health and monitoring endpoints
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	api := r.Group("/api")

	// Task routes
	taskHandler := handlers.NewTaskHandler(app.TaskService)
	taskRoutes := api.Group("/tasks")
	{
		taskRoutes.POST("", taskHandler.CreateTask)
		taskRoutes.PUT("", taskHandler.UpdateTask)
		taskRoutes.PUT("/:id", taskHandler.UpdateTaskByID)
		taskRoutes.DELETE("", taskHandler.RemoveTasks)
		taskRoutes.DELETE("/:id", taskHandler.RemoveTask)
		taskRoutes.GET("/search", taskHandler.SearchByDescription)
	}

	// User routes
	userHandler := handlers.NewUserHandler(app.UserService)
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.GET("/username/:username", userHandler.GetUserByUsername)
		userRoutes.GET("/:id/tasks", userHandler.GetTasksOfUser)
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
