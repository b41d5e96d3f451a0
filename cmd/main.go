package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"eggmart/internal/analytics"
	"eggmart/internal/config"
	"eggmart/internal/handlers"
	"eggmart/internal/jobs"
	"eggmart/internal/jobs/background"
	"eggmart/internal/middleware"
	"eggmart/internal/models"
	"eggmart/internal/repositories"
	"eggmart/internal/services"
	"eggmart/internal/storage"
	"eggmart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Configuration file with env overrides
	cfg := config.DefaultConfig()
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	applyEnvOverrides(cfg)

	// KV persistence backend
	var kv storage.KV
	switch cfg.Storage.Backend {
	case "redis":
		kv = storage.NewRedisKV(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required for the postgres storage backend")
		}
		pool, err := database.NewPool(cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		pgKV := storage.NewPostgresKV(pool)
		if err := pgKV.Migrate(context.Background()); err != nil {
			log.Fatalf("Failed to migrate storage table: %v", err)
		}
		kv = pgKV
	case "memory":
		log.Printf("WARNING: Using in-memory storage; records will not survive restarts")
		kv = storage.NewMemoryKV()
	default:
		log.Fatalf("Unknown storage backend %q (expected redis, postgres, or memory)", cfg.Storage.Backend)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = random.String(16)
		log.Printf("WARNING: ADMIN_PASSWORD not set, generated password: %s", adminPassword)
	}

	// Record store and services
	store := repositories.NewRecordStore(kv, seedRecords(cfg))
	analyticsSvc := analytics.NewService(store, kv, analytics.DefaultCacheTTL)
	distributorSvc := services.NewDistributorService(store, analyticsSvc, cfg.Form.ResetDelay())

	authSvc, err := services.NewAuthService(adminUsername, adminPassword, jwtSecret, 12*time.Hour)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	// Snapshot archive (optional)
	var exporter *jobs.SnapshotExporter
	if cfg.Archive.Enabled {
		archiveSvc, err := services.NewArchiveService(cfg.Archive.Endpoint, cfg.Archive.AccessKey, cfg.Archive.SecretKey, cfg.Archive.UseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize archive service: %v", err)
		}
		exporter = jobs.NewSnapshotExporter(store, archiveSvc, cfg.Archive.Bucket)
	}

	// Background jobs
	scheduler := background.NewJobScheduler(analyticsSvc, exporter)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	distributorHandlers := handlers.NewDistributorHandlers(distributorSvc)
	metricsHandlers := handlers.NewMetricsHandlers(analyticsSvc)
	healthHandlers := handlers.NewHealthHandlers(kv, version)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for login)
	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	protected.GET("/distributors", distributorHandlers.ListDistributors)
	protected.POST("/distributors", distributorHandlers.CreateDistributor)
	protected.DELETE("/distributors/:id", distributorHandlers.DeleteDistributor)

	protected.GET("/metrics/distributors", metricsHandlers.DistributorMetrics)

	log.Printf("Eggmart admin server v%s starting on port %d", version, cfg.Server.Port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}

// applyEnvOverrides lets the common deployment knobs override the config
// file, matching how the service is run in containers.
func applyEnvOverrides(cfg *config.Config) {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			log.Fatalf("Invalid port %s: %v", portStr, err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Storage.RedisAddr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Storage.RedisPassword = password
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.Storage.RedisDB = db
		}
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Storage.DatabaseURL = dsn
	}
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		cfg.Archive.Enabled = true
		cfg.Archive.Endpoint = endpoint
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		cfg.Archive.AccessKey = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		cfg.Archive.SecretKey = secretKey
	}
	if os.Getenv("MINIO_USE_SSL") == "true" {
		cfg.Archive.UseSSL = true
	}
	if bucket := os.Getenv("MINIO_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}
}

// seedRecords builds the fallback list from config; a nil return selects the
// built-in default seed.
func seedRecords(cfg *config.Config) []*models.DistributorRecord {
	seed := cfg.Seed
	if seed.FullName == "" && seed.Username == "" {
		return nil
	}
	module := models.Module(seed.Module)
	if !module.Valid() {
		log.Printf("WARNING: invalid seed module %q, using %s", seed.Module, models.ModuleDailySales)
		module = models.ModuleDailySales
	}
	return []*models.DistributorRecord{
		{
			ID:       1,
			FullName: seed.FullName,
			Phone:    seed.Phone,
			Username: seed.Username,
			Module:   module,
		},
	}
}
