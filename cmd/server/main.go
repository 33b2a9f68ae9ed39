package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ledgerapp "github.com/hostelbooks/backend/internal/application/ledger"
	reportapp "github.com/hostelbooks/backend/internal/application/report"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/hostelbooks/backend/internal/infrastructure/cache"
	"github.com/hostelbooks/backend/internal/infrastructure/config"
	"github.com/hostelbooks/backend/internal/infrastructure/logger"
	"github.com/hostelbooks/backend/internal/infrastructure/persistence"
	"github.com/hostelbooks/backend/internal/interfaces/http/handler"
	"github.com/hostelbooks/backend/internal/interfaces/http/middleware"
	"github.com/hostelbooks/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ledger service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db.DB)
	settingRepo := persistence.NewGormAccountSettingRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	billRepo := persistence.NewGormBillLedgerRepository(db.DB)
	reportRepo := persistence.NewGormLedgerReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// System account cache with optional cross-instance invalidation.
	// Without Redis the cache still works, but a mapping change on one
	// instance does not reach the others.
	systemCache := cache.NewInMemorySystemAccountCache(cache.WithCacheLogger(log))
	var invalidator ledger.CacheInvalidator
	if cfg.Redis.Enabled {
		redisInvalidator, err := cache.NewRedisCacheInvalidator(cfg.Redis,
			cache.WithInvalidatorChannel(cfg.Cache.InvalidationChannel),
			cache.WithInvalidatorLogger(log),
		)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		invalidator = redisInvalidator
		defer func() {
			if err := redisInvalidator.Close(); err != nil {
				log.Error("Error closing redis invalidator", zap.Error(err))
			}
		}()
		log.Info("Redis cache invalidation enabled",
			zap.String("channel", cfg.Cache.InvalidationChannel),
		)
	} else {
		log.Warn("Redis disabled, mapping cache invalidation is local only")
	}

	// Application services
	mappingService := ledgerapp.NewMappingService(settingRepo, accountRepo, systemCache, invalidator, log)
	journalService := ledgerapp.NewJournalService(txScope, mappingService, log)
	accountService := ledgerapp.NewAccountService(accountRepo, categoryRepo, entryRepo, settingRepo, txScope, systemCache, log)
	categoryService := ledgerapp.NewCategoryService(categoryRepo, accountRepo, log)
	billService := ledgerapp.NewBillService(billRepo, accountRepo, entryRepo, log)
	reconciliationService := ledgerapp.NewReconciliationService(entryRepo, accountRepo, log)
	reportService := reportapp.NewReportService(reportRepo, accountRepo, log)

	// Listen for mapping invalidations published by peer instances
	listenerCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()
	go func() {
		if err := mappingService.StartInvalidationListener(listenerCtx); err != nil {
			log.Error("Cache invalidation listener stopped", zap.Error(err))
		}
	}()

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db))
	engine.GET("/ready", readyHandler(db))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAccountHandler(accountService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewMappingHandler(mappingService)).
		Register(handler.NewJournalHandler(journalService)).
		Register(handler.NewBillHandler(billService)).
		Register(handler.NewReconciliationHandler(reconciliationService)).
		Register(handler.NewReportHandler(reportService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

	stopListener()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// readyHandler reports whether the service can take traffic. Readiness
// requires a live database connection; liveness (/health) reports the same
// probe with component detail.
func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// healthHandler returns a handler for health check endpoints
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
