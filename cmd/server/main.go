package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	warehouseapp "github.com/fruitscm/backend/internal/application/warehouse"
	"github.com/fruitscm/backend/internal/domain/shared"
	"github.com/fruitscm/backend/internal/infrastructure/auth"
	"github.com/fruitscm/backend/internal/infrastructure/cache"
	"github.com/fruitscm/backend/internal/infrastructure/config"
	"github.com/fruitscm/backend/internal/infrastructure/logger"
	"github.com/fruitscm/backend/internal/infrastructure/persistence"
	"github.com/fruitscm/backend/internal/infrastructure/scheduler"
	"github.com/fruitscm/backend/internal/interfaces/http/handler"
	"github.com/fruitscm/backend/internal/interfaces/http/middleware"
	"github.com/fruitscm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting warehouse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockRecordRepository(db.DB)
	logRepo := persistence.NewGormInventoryLogRepository(db.DB)
	alertRepo := persistence.NewGormInventoryAlertRepository(db.DB)
	inboundRepo := persistence.NewGormInboundOrderRepository(db.DB)
	outboundRepo := persistence.NewGormOutboundOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Idempotency store guards confirm endpoints against replays
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store enabled")
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize application services
	warehouseService := warehouseapp.NewWarehouseService(warehouseRepo, stockRepo, logRepo)
	alertService := warehouseapp.NewAlertService(warehouseRepo, stockRepo, alertRepo)
	inboundService := warehouseapp.NewInboundService(warehouseRepo, inboundRepo, txScope)
	inboundService.SetIdempotencyStore(idempotencyStore)
	outboundService := warehouseapp.NewOutboundService(warehouseRepo, outboundRepo, txScope)
	outboundService.SetIdempotencyStore(idempotencyStore)

	// Initialize handlers
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	inventoryHandler := handler.NewInventoryHandler(warehouseService, alertService)
	inboundHandler := handler.NewInboundHandler(inboundService)
	outboundHandler := handler.NewOutboundHandler(outboundService)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	warehouseRoutes := router.NewDomainGroup("warehouse", "/warehouse")
	if cfg.App.Env == "production" {
		warehouseRoutes.Use(middleware.JWTAuth(jwtService))
	} else {
		// Outside production the X-Organization-ID header may stand in
		// for a token.
		warehouseRoutes.Use(middleware.JWTAuthOptional(jwtService))
	}
	warehouseRoutes.Use(middleware.OrgScope())

	// Warehouse management
	warehouseRoutes.POST("/warehouses", warehouseHandler.Create)
	warehouseRoutes.GET("/warehouses", warehouseHandler.List)
	warehouseRoutes.GET("/warehouses/:id", warehouseHandler.GetByID)
	warehouseRoutes.PUT("/warehouses/:id", warehouseHandler.Update)
	warehouseRoutes.DELETE("/warehouses/:id", warehouseHandler.Delete)
	warehouseRoutes.POST("/warehouses/:id/locations", warehouseHandler.CreateLocation)
	warehouseRoutes.GET("/warehouses/:id/locations", warehouseHandler.ListLocations)
	warehouseRoutes.DELETE("/warehouses/:id/locations/:locationId", warehouseHandler.DeleteLocation)

	// Inventory queries and expiration alerts
	warehouseRoutes.GET("/inventory", inventoryHandler.Search)
	warehouseRoutes.GET("/warehouses/:id/inventory", inventoryHandler.List)
	warehouseRoutes.POST("/warehouses/:id/alerts/scan", inventoryHandler.ScanAlerts)
	warehouseRoutes.GET("/inventory/:id/logs", inventoryHandler.Logs)
	warehouseRoutes.GET("/inventory-alerts", inventoryHandler.ListAlerts)
	warehouseRoutes.POST("/inventory-alerts/:id/resolve", inventoryHandler.ResolveAlert)

	// Inbound orders
	warehouseRoutes.POST("/inbound-orders", inboundHandler.Create)
	warehouseRoutes.GET("/inbound-orders", inboundHandler.List)
	warehouseRoutes.GET("/inbound-orders/:id", inboundHandler.GetByID)
	warehouseRoutes.POST("/inbound-orders/:id/confirm", inboundHandler.Confirm)

	// Outbound orders
	warehouseRoutes.POST("/outbound-orders", outboundHandler.Create)
	warehouseRoutes.GET("/outbound-orders", outboundHandler.List)
	warehouseRoutes.GET("/outbound-orders/:id", outboundHandler.GetByID)
	warehouseRoutes.POST("/outbound-orders/:id/confirm", outboundHandler.Confirm)

	r.Register(warehouseRoutes)
	r.Setup()

	// Background expiration scan
	scanScheduler := scheduler.NewExpirationScanScheduler(alertService, log, scheduler.ExpirationScanSchedulerConfig{
		Enabled:     cfg.Alert.ScanEnabled,
		Interval:    cfg.Alert.ScanInterval,
		ScanTimeout: 5 * time.Minute,
	})
	if err := scanScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start expiration scan scheduler", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := scanScheduler.Stop(ctx); err != nil {
		log.Error("Error stopping scan scheduler", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness plus database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
