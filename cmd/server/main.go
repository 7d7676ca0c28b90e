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

	appweve "github.com/aguulga/backend/internal/application/weve"
	"github.com/aguulga/backend/internal/domain/weve"
	"github.com/aguulga/backend/internal/infrastructure/config"
	"github.com/aguulga/backend/internal/infrastructure/logger"
	"github.com/aguulga/backend/internal/infrastructure/persistence"
	infraweve "github.com/aguulga/backend/internal/infrastructure/weve"
	"github.com/aguulga/backend/internal/interfaces/http/handler"
	"github.com/aguulga/backend/internal/interfaces/http/middleware"
	"github.com/aguulga/backend/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting Aguulga Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
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
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Weve session state is process-wide: one active session at a time
	sessionStore := weve.NewSessionStore()

	// Select the Weve client. Simulation is the default so undeployed
	// environments never reach the real platform.
	var weveClient weve.Client
	if cfg.Weve.Simulation {
		weveClient = infraweve.NewSimulator(cfg.Weve.SimulatedSessionTTLSeconds)
		log.Info("Weve client running in simulation mode")
	} else {
		weveClient, err = infraweve.NewHTTPClient(&infraweve.Config{
			APIBaseURL:    cfg.Weve.APIBaseURL,
			APIKey:        cfg.Weve.APIKey,
			TimeoutMillis: cfg.Weve.TimeoutMillis,
		}, sessionStore)
		if err != nil {
			log.Fatal("Failed to create Weve client", zap.Error(err))
		}
		log.Info("Weve client configured", zap.String("base_url", cfg.Weve.APIBaseURL))
	}

	// Initialize application services
	sessionService := appweve.NewSessionService(weveClient, sessionStore, log)
	syncService := appweve.NewSyncService(weveClient, sessionStore, productRepo, log)
	orderService := appweve.NewOrderService(weveClient, sessionStore, orderRepo, log)

	// Initialize HTTP handlers
	weveHandler := handler.NewWeveHandler(sessionService, syncService, orderService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(weveHandler).
		Register(systemHandler)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
